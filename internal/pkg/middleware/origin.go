package middleware

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// RequireSameOrigin rejects requests whose Origin header, or Referer when Origin is
// missing, points at another host. Requests carrying neither are rejected too.
func RequireSameOrigin(c *fiber.Ctx) error {
	source := c.Get(fiber.HeaderOrigin)
	if source == "" || source == "null" {
		source = c.Get(fiber.HeaderReferer)
	}
	if source == "" {
		return fiber.ErrForbidden
	}

	u, err := url.Parse(source)
	if err != nil || u.Host == "" || u.Host != c.Hostname() {
		return fiber.ErrForbidden
	}
	return c.Next()
}
