// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting every non-public endpoint.
//   - rayid: assigns every request a ray id, stored in the context locals and
//     echoed in the X-Ray-ID response header for tracing.
//
// cmd/start.go registers rayid first, then request logging, then the public
// routes (swagger, metrics), then auth.
package middleware
