// Package mime resolves response content types for files served by the diagnostics server.
//
// The resolver works over a fixed, ordered table of (extension, type) pairs. The first
// entry doubles as the default type, returned when a path carries no extension or an
// extension the table does not know.
//
// # Matching
//
// The extension is everything after the last '.' in the path, including the dot, and is
// compared case-sensitively. "index.HTML" therefore resolves to the default type.
//
// # Usage
//
//	ct := mime.Resolve("html/index.html") // "text/html"
//	ct = mime.Resolve("html/README")      // "text/plain"
package mime
