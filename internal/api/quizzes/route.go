package quizzes

import (
	"quizgen/internal/services/quizstore"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

func RegisterRoutes(r fiber.Router, store quizstore.Store, publicURL string) {
	h := &handler{store: store, publicURL: publicURL, validate: validator.New()}
	grp := r.Group("/api/quizzes/:id")

	grp.Get("/", h.HandleGet)
	grp.Patch("/questions/:index", h.HandlePatchQuestion)
	grp.Delete("/questions/:index", h.HandleDeleteQuestion)
	grp.Get("/export", h.HandleExport)
	grp.Get("/share", h.HandleShare)
}
