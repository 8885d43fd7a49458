// Package telemetry exposes the frame scheduler's statistics over HTTP and websockets
// and keeps an optional history of them in the database.
//
// # HTTP Endpoints
//
//   - GET /data : Current snapshot (fps, frames, total_seconds, updated_at).
//   - GET /data/history : Most recent persisted samples (supports ?limit=N).
//     Responds 503 when no database is configured.
//
// Both endpoints sit behind the API key middleware when server.api_key is set.
//
// # Recorder
//
// The Recorder persists the current snapshot every telemetry.record_interval as a
// models.FrameSample tagged with the session ID of this process.
//
// # Stream
//
// The Stream runs its own small net/http server (telemetry.stream_port) and pushes
// the snapshot as JSON to every websocket client on /ws each telemetry.stream_interval.
package telemetry
