package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// AdminToken is the bearer token required for operator actions (deleting records).
	AdminToken string `mapstructure:"admin_token" default:""`
}

// IsAdmin reports whether the Authorization header carries the admin bearer token.
// An unset admin token never authorizes.
func (c Config) IsAdmin(authorization string) bool {
	token, ok := strings.CutPrefix(authorization, "Bearer ")
	return ok && c.AdminToken != "" && token == c.AdminToken
}
