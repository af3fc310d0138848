package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ManuelReschke/Yatube/app/controllers"
	"github.com/ManuelReschke/Yatube/app/forms"
	"github.com/ManuelReschke/Yatube/app/repository"
	"github.com/ManuelReschke/Yatube/internal/pkg/cache"
	"github.com/ManuelReschke/Yatube/internal/pkg/database"
	"github.com/ManuelReschke/Yatube/internal/pkg/env"
	"github.com/ManuelReschke/Yatube/internal/pkg/pagecache"
	"github.com/ManuelReschke/Yatube/internal/pkg/router"
	"github.com/ManuelReschke/Yatube/internal/pkg/storage"
	"github.com/ManuelReschke/Yatube/views"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	media, err := storage.New(context.Background())
	if err != nil {
		log.Fatalf("media storage: %v", err)
	}

	app := fiber.New(fiber.Config{
		Views:        views.NewEngine(),
		ErrorHandler: controllers.ErrorHandler,
		// multipart overhead on top of the largest accepted image
		BodyLimit: forms.MaxImageBytes + 1024*1024,
	})

	app.Use(favicon.New())

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "admin"),
		},
	}), monitor.New())

	// static files
	app.Static("/", "./public/assets", fiber.Static{
		CacheDuration: 15 * time.Second,
		Compress:      true,
	})

	opts := router.Options{
		Repos:          repository.GetGlobalRepositories(),
		Media:          media,
		MediaURL:       env.GetEnv("MEDIA_URL", "/media"),
		PageCache:      pagecache.New(cache.NewStorage(cache.DBPages), time.Duration(env.GetEnvInt("INDEX_CACHE_SECONDS", 20))*time.Second),
		SessionStorage: cache.NewStorage(cache.DBSessions),
	}
	if _, ok := media.(*storage.Local); ok {
		opts.MediaRoot = env.GetEnv("MEDIA_ROOT", "./media")
	}

	// ROUTER
	router.InstallRouter(app, opts)

	return app
}
