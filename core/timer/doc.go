// Package timer provides the monotonic elapsed-time source used by the frame scheduler.
//
// A Timer keeps two reference points: the moment it was started and the moment its
// frame time was last sampled. The distinction matters to the scheduler, which uses
// one Timer for frame gating and the FPS window and another for total simulation time.
//
//   - PeekFrameTime: time since the last sample, without resetting it.
//   - FrameTime: time since the last sample, then resets the sample point.
//   - Elapsed: time since Start. Sampling never touches it.
//
// Time comes from a Clock so tests can drive the scheduler with a ManualClock.
package timer
