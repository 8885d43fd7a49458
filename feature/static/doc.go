// Package static serves the diagnostics web UI from a content root on disk.
//
// The content root lives next to the executable (ModuleDir/<content_root>), so the
// server behaves the same no matter where the process was launched from.
//
// # Routing
//
//   - GET / : Serves <root>/index.html. The file is not checked up front; a missing
//     index surfaces as an I/O fault when it is opened.
//   - GET /<path> : Serves <root>/<path> if it exists and stays inside the root after
//     cleaning and symlink resolution. Anything else is a 404.
//
// Query strings never take part in resolution. Content types come from core/mime.
//
// The feature must be loaded last: its catch-all route would otherwise shadow
// reserved paths such as /data.
package static
