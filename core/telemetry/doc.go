// Package telemetry holds the live frame statistics shared between the frame scheduler
// and the diagnostics server.
//
// The scheduler runs on the primary thread and publishes a Snapshot into a Cell each
// time its one-second FPS window closes. HTTP workers, the history recorder and the
// websocket stream read the Cell concurrently. The Cell is an atomic pointer, so readers
// never block the frame loop.
//
// # Configuration
//
// Config controls how often snapshots are persisted and streamed:
//   - record_interval: period of the history recorder
//   - stream_port: port of the websocket stream (0 disables it)
//   - stream_interval: push period of the websocket stream
//   - history_limit: default number of rows returned by /data/history
package telemetry
