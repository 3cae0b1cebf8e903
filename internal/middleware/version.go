package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// CurrentAPIVersion is the version reported when the client does not pin one.
const CurrentAPIVersion = "1.1.0"

// APIVersion resolves the X-Api-Version request header, stores the result in
// context and echoes it back on the response. Short forms pin to their latest
// patch release.
func APIVersion() fiber.Handler {
	aliases := map[string]string{
		"1":   "1.1.0",
		"1.0": "1.0.2",
		"1.1": "1.1.0",
	}

	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", CurrentAPIVersion)
		if full, ok := aliases[version]; ok {
			version = full
		}

		c.Locals("apiVersion", version)
		c.Set("X-Api-Version", version)

		return c.Next()
	}
}
