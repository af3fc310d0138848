package middleware

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/Yatube/internal/pkg/usercontext"
)

// LoginURL is where unauthenticated visitors of protected pages are sent.
const LoginURL = "/auth/login"

// RequireAuth ensures a logged-in web session; redirects to the login page with the
// current URL as next otherwise.
func RequireAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Redirect(LoginURL+"?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireGuest sends logged-in users away from the login and signup pages.
func RequireGuest(c *fiber.Ctx) error {
	if usercontext.IsLoggedIn(c) {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return c.Next()
}
