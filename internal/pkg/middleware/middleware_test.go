package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/Yatube/internal/pkg/session"
	"github.com/ManuelReschke/Yatube/internal/pkg/usercontext"
)

func newTestApp() *fiber.App {
	session.NewSessionStoreWithStorage(nil)

	app := fiber.New()
	app.Use(UserContextMiddleware)
	app.Get("/login-as/:name", func(c *fiber.Ctx) error {
		if err := session.Login(c, 3, c.Params("name")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/private", RequireAuth, func(c *fiber.Ctx) error {
		return c.SendString("hello " + usercontext.GetUsername(c))
	})
	app.Get("/guest", RequireGuest, func(c *fiber.Ctx) error {
		return c.SendString("guest")
	})
	return app
}

func TestRequireAuthRedirectsWithNext(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/private?x=1", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/auth/login?next=%2Fprivate%3Fx%3D1", resp.Header.Get("Location"))
}

func TestSessionBecomesUserContext(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/login-as/leo", nil), -1)
	require.NoError(t, err)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest("GET", "/private", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/guest", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
}

func TestRequireSameOrigin(t *testing.T) {
	app := fiber.New()
	app.Post("/logout", RequireSameOrigin, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	cases := []struct {
		name    string
		headers map[string]string
		want    int
	}{
		{"same origin", map[string]string{"Origin": "http://example.com"}, fiber.StatusNoContent},
		{"same referer", map[string]string{"Referer": "http://example.com/leo/1"}, fiber.StatusNoContent},
		{"opaque origin falls back to referer", map[string]string{"Origin": "null", "Referer": "http://example.com/"}, fiber.StatusNoContent},
		{"foreign origin", map[string]string{"Origin": "https://evil.example"}, fiber.StatusForbidden},
		{"foreign referer", map[string]string{"Referer": "https://evil.example/page"}, fiber.StatusForbidden},
		{"no headers", map[string]string{}, fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/logout", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
