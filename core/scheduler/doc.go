// Package scheduler runs the frame-paced main loop.
//
// Each iteration first takes one pending message from the Pump and dispatches it
// without advancing simulation time. When no message is pending, the loop checks the
// frame gate (1/max_fps) against the fpsTimer and, once it is met, advances the
// Simulation by one Update + Render step.
//
// # Timers
//
//   - fpsTimer: gates frames (peeked, then sampled for the delta) and tracks the
//     one-second FPS window.
//   - timer: total simulation time since Run started. Never reset.
//
// When a window closes, the frame count becomes the reported FPS and a snapshot is
// published to the telemetry cell for HTTP readers.
//
// With scheduler.idle_sleep at zero the loop polls without sleeping, which keeps
// frame pacing exact at the cost of one busy core.
package scheduler
