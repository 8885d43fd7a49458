// Package content manages the diagnostics content root on disk and its published copy
// in object storage.
//
// # Operations
//
//   - Check: Walks the content root and reports whether index.html exists, how many
//     files it holds and which of them will be served with the fallback content type.
//   - Pull: Mirrors objects under storage.prefix into the content root. Keys that would
//     land outside the root are skipped.
//   - Push: Uploads the content root with content types from core/mime and optionally
//     prunes remote objects that no longer exist locally.
//
// The commands `content check`, `content pull` and `content push` drive these.
package content
