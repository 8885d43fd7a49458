package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header is the response (and accepted request) header carrying the RayID.
	Header = "X-Ray-ID"
	// LocalsKey is the fiber locals key holding the RayID.
	LocalsKey = "ray_id"
)

// New returns a middleware that tags every request with a RayID.
// A RayID supplied by the client is reused when it is a valid UUID.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if _, err := uuid.Parse(rid); err != nil {
			rid = uuid.NewString()
		}
		c.Locals(LocalsKey, rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
