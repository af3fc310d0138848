package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/Yatube/app/controllers"
	"github.com/ManuelReschke/Yatube/app/repository"
	"github.com/ManuelReschke/Yatube/internal/pkg/middleware"
	"github.com/ManuelReschke/Yatube/internal/pkg/pagecache"
	"github.com/ManuelReschke/Yatube/internal/pkg/session"
	"github.com/ManuelReschke/Yatube/internal/pkg/storage"
)

// Options wires the router to its collaborators
type Options struct {
	Repos *repository.Repositories
	Media storage.Backend
	// MediaURL and MediaRoot serve local media files; leave MediaRoot empty for remote backends
	MediaURL  string
	MediaRoot string
	PageCache *pagecache.PageCache
	// SessionStorage backs the session store; nil keeps sessions in memory
	SessionStorage fiber.Storage
	DisableCSRF    bool
}

type HttpRouter struct {
	opts Options

	posts    *controllers.PostController
	profiles *controllers.ProfileController
	auth     *controllers.AuthController
}

func NewHttpRouter(opts Options) *HttpRouter {
	media := controllers.NewMedia(opts.Media)
	return &HttpRouter{
		opts:     opts,
		posts:    controllers.NewPostController(opts.Repos, media),
		profiles: controllers.NewProfileController(opts.Repos, media),
		auth:     controllers.NewAuthController(opts.Repos.User),
	}
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	session.NewSessionStoreWithStorage(h.opts.SessionStorage)

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	if h.opts.MediaRoot != "" {
		app.Static(h.opts.MediaURL, h.opts.MediaRoot)
	}

	h.registerCSRFProtectedRoutes(app)

	app.Use(controllers.HandleNotFound)
}
