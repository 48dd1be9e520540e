// Package rayid tags every request with a unique identifier for tracing.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the request identifier.
const HeaderName = "X-Ray-ID"

// LocalsKey is the Fiber locals key the identifier is stored under.
const LocalsKey = "ray_id"

// New returns a middleware that assigns a RayID to each request. An
// incoming X-Ray-ID header is honored so identifiers survive proxies,
// otherwise a new UUID is generated.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Locals(LocalsKey, rid)
		c.Set(HeaderName, rid)

		return c.Next()
	}
}
