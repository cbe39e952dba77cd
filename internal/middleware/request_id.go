package middleware

import (
	"github.com/gofiber/fiber/v2"

	"restobot/pkg/utils"
)

const RequestIDKey = "X-Request-ID"

// NewRequestIDMiddleware echoes a caller supplied X-Request-ID or mints a ULID.
func NewRequestIDMiddleware() fiber.Handler {
	ids := utils.New()

	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDKey)
		if requestID == "" {
			requestID, _ = ids.NewULID()
		}

		c.Locals(RequestIDKey, requestID)
		c.Set(RequestIDKey, requestID)

		return c.Next()
	}
}
