// Package middleware contains HTTP middleware for the diagnostics server.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
//   - Auth: Implements API key validation for the telemetry endpoints. It is a no-op
//     when no key is configured.
//
// Static file serving stays unauthenticated; auth is registered per route group.
package middleware
