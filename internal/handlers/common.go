package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// parseIDParam parses a numeric path parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// numberFromBody reads a numeric field out of a decoded JSON body. JSON
// numbers arrive as float64; form-driven clients send strings.
func numberFromBody(body map[string]interface{}, key string) (uint64, error) {
	v, ok := body[key]
	if !ok {
		return 0, fmt.Errorf("missing field %q", key)
	}
	switch n := v.(type) {
	case float64:
		if n < 1 {
			return 0, fmt.Errorf("invalid %s: %v", key, v)
		}
		return uint64(n), nil
	case string:
		id, err := strconv.ParseUint(n, 10, 64)
		if err != nil || id == 0 {
			return 0, fmt.Errorf("invalid %s: %q", key, n)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("invalid %s: expected number", key)
	}
}
