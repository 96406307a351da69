package api

import (
	"quizgen/config"
	"quizgen/internal/api/healthcheck"
	"quizgen/internal/api/quizzes"
	"quizgen/internal/api/upload"
	"quizgen/internal/middleware"
	"quizgen/internal/services/quizstore"
	uploadsvc "quizgen/internal/services/upload"
	"quizgen/pkg/apperror"

	"github.com/gofiber/fiber/v3"
)

// Deps are the services the HTTP layer serves.
type Deps struct {
	Upload *uploadsvc.Service
	Store  quizstore.Store
}

// NewApp builds the fiber app with middleware and every route registered.
func NewApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      config.Cfg.Server.AppName,
		BodyLimit:    config.Cfg.Server.BodyLimit,
		ErrorHandler: apperror.ErrorHandler,
	})

	middleware.Setup(app)

	healthcheck.RegisterRoutes(app)
	upload.RegisterRoutes(app, deps.Upload)
	quizzes.RegisterRoutes(app, deps.Store, config.Cfg.Server.PublicURL)

	return app
}
