package auth

import (
	"github.com/gofiber/fiber/v2"
)

// Config configures the API key middleware.
type Config struct {
	// ApiKey is the expected key. Empty disables the check.
	ApiKey string
	// Header is the request header holding the key.
	Header string
}

// New returns a middleware rejecting requests without the configured API key.
func New(cfg Config) fiber.Handler {
	header := cfg.Header
	if header == "" {
		header = "X-API-Key"
	}

	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" || c.Method() == fiber.MethodOptions {
			return c.Next()
		}
		if c.Get(header) != cfg.ApiKey {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
		return c.Next()
	}
}
