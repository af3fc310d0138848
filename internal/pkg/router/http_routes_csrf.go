package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/ManuelReschke/Yatube/app/controllers"
	"github.com/ManuelReschke/Yatube/internal/pkg/env"
	"github.com/ManuelReschke/Yatube/internal/pkg/middleware"
)

const logoutPath = "/auth/logout"

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     controllers.CSRFContextKey,
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		// logout is guarded by an origin check: the shared home page cache serves one
		// viewer's token to everybody
		Next: func(c *fiber.Ctx) bool {
			return h.opts.DisableCSRF || c.Path() == logoutPath
		},
	}

	group := app.Group("", csrf.New(csrfConf))

	group.Get("/", h.opts.PageCache.Handler(), h.posts.HandleIndex)

	group.Get("/auth/login", middleware.RequireGuest, h.auth.HandleLogin)
	group.Post("/auth/login", middleware.RequireGuest, h.auth.HandleLogin)
	group.Get("/auth/signup", middleware.RequireGuest, h.auth.HandleSignup)
	group.Post("/auth/signup", middleware.RequireGuest, h.auth.HandleSignup)
	group.Post(logoutPath, middleware.RequireSameOrigin, h.auth.HandleLogout)

	group.Get("/group/:slug", h.posts.HandleGroupPosts)
	group.Get("/new", middleware.RequireAuth, h.posts.HandleNewPost)
	group.Post("/new", middleware.RequireAuth, h.posts.HandleNewPost)
	group.Get("/follow", middleware.RequireAuth, h.profiles.HandleFollowIndex)

	// username routes last so the fixed paths above win
	group.Get("/:username", h.profiles.HandleProfile)
	group.Post("/:username/follow", middleware.RequireAuth, h.profiles.HandleProfileFollow)
	group.Post("/:username/unfollow", middleware.RequireAuth, h.profiles.HandleProfileUnfollow)
	group.Get("/:username/:post_id<int>", h.posts.HandlePostView)
	group.Get("/:username/:post_id<int>/edit", middleware.RequireAuth, h.posts.HandlePostEdit)
	group.Post("/:username/:post_id<int>/edit", middleware.RequireAuth, h.posts.HandlePostEdit)
	group.Post("/:username/:post_id<int>/comment", middleware.RequireAuth, h.posts.HandleAddComment)
}
