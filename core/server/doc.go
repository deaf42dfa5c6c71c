// Package server holds the HTTP server configuration.
//
// The Config struct defines the HTTP port, the API key guarding every
// non-public route and the request body limit. cmd/start.go builds the Fiber
// application from it.
package server
