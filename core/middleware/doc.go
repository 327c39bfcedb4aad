// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - Auth: API key validation protecting every catalog endpoint.
//   - RayID: assigns a unique Request ID (RayID) to every request, injecting it into the
//     context and response headers for tracing.
//
// The RayID middleware must be registered first so that auth failures are traceable too.
package middleware
