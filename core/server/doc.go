// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the listening port,
// the API key that protects every request and the admin token that guards operator-only actions
// such as deleting catalog records.
package server
