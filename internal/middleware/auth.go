package middleware

import (
	"strings"

	"github.com/evalsec/cyberassess/internal/config"
	"github.com/evalsec/cyberassess/internal/services"
	"github.com/evalsec/cyberassess/internal/types"
	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie carrying the admin session token.
const SessionCookieName = "admin_session"

// AuthAdmin validates that the request carries a valid admin session token,
// either as a bearer token or in the session cookie.
func AuthAdmin(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			token = c.Cookies(SessionCookieName)
		}
		if token == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Admin session token not found",
				Type:    "admin.authorization",
			}
		}

		if err := services.ValidateSessionToken(cfg, token); err != nil {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "Invalid session: " + err.Error(),
				Type:    "admin.authorization",
			}
		}

		return c.Next()
	}
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(c *fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	if auth == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}
