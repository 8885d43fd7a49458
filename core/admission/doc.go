// Package admission implements the diagnostics server's bounded worker pool.
//
// Two limits apply:
//
//  1. Connections. The Listener wrapper admits at most maxThreads+maxQueued open
//     connections. A connection accepted beyond that is closed immediately, so the
//     client sees a refusal instead of an unbounded wait.
//  2. Workers. The Middleware lets at most maxThreads requests run their handlers at
//     once. Admitted connections beyond that wait for a worker slot.
//
// Idle keep-alive connections keep their connection slot until the server's idle timeout
// reclaims them.
//
// Both limits are golang.org/x/sync/semaphore weights. Counters are exposed via Stats.
package admission
