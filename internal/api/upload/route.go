package upload

import (
	uploadsvc "quizgen/internal/services/upload"

	"github.com/gofiber/fiber/v3"
)

func RegisterRoutes(r fiber.Router, svc *uploadsvc.Service) {
	h := &handler{svc: svc}
	grp := r.Group("/api/upload")

	grp.Get("/status", h.HandleStatus)
	grp.Post("/", h.HandleUpload)
}
