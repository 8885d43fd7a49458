// Package wui owns the lifecycle of the embedded diagnostics HTTP server.
//
// Start binds the listener, installs the ambient middleware (RayID, admission,
// request logging) and lets the caller mount its features. It never blocks: the
// server runs on its own goroutine until Handle.Shutdown is called.
//
// # Admission
//
// Connections beyond max_threads + max_queued are closed as soon as they are
// accepted. At most max_threads requests run handlers at once; the rest wait on the
// worker semaphore. Keep-alive connections idle for longer than idle_timeout are
// closed, which frees their slot.
//
// # Failure policy
//
// A disabled server is inert and never opens a socket. A bind failure is returned as
// *BindError so the caller can log it and carry on: the diagnostics server must never
// stop the application from starting.
package wui
