// Package server holds the diagnostics HTTP server configuration.
//
// The server lifecycle lives in core/wui; this package only defines the immutable
// Config value and its invariants so that core/config can embed it.
//
// # Configuration
//
//   - port: listen port (default 10002)
//   - max_queued: connections allowed to wait for a worker (default 100)
//   - max_threads: concurrently served requests (default 2, at least 1)
//   - idle_timeout: idle keep-alive reclamation (default 3s)
//   - disabled: never bind a socket (default false)
//   - content_root: static files directory next to the executable (default "html")
//   - shutdown_timeout: drain deadline for graceful shutdown (default 5s)
//   - api_key: protects the telemetry endpoints when non-empty
//   - docs: serve the swagger UI
package server
