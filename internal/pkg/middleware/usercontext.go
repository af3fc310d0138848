package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/Yatube/internal/pkg/session"
	"github.com/ManuelReschke/Yatube/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the session of every request into a usercontext.UserContext
func UserContextMiddleware(c *fiber.Ctx) error {
	userID, username, ok, err := session.CurrentUser(c)
	if err != nil {
		log.Warnf("[UserContext] session lookup failed: %v", err)
	}
	if !ok {
		usercontext.Set(c, usercontext.UserContext{})
		return c.Next()
	}

	usercontext.Set(c, usercontext.UserContext{
		UserID:     userID,
		Username:   username,
		IsLoggedIn: true,
	})

	return c.Next()
}
