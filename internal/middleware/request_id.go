package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderRequestID carries the request identifier in both directions
const HeaderRequestID = "X-Request-ID"

// RequestID keeps a caller-supplied X-Request-ID or generates one, stores it
// in the "requestid" local for the access log and echoes it on the response
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		c.Locals("requestid", id)
		c.Set(HeaderRequestID, id)

		return c.Next()
	}
}
