package upload

import (
	"context"
	"fmt"
	"strings"

	"quizgen/config"
	"quizgen/internal/core/extract"
	"quizgen/internal/core/quiz"
	uploadsvc "quizgen/internal/services/upload"
	"quizgen/pkg/apperror"
	"quizgen/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

type uploadResponse struct {
	QuizID         string          `json:"quizId"`
	FileName       string          `json:"fileName"`
	FileType       string          `json:"fileType"`
	TotalSlides    int             `json:"totalSlides"`
	TextPreview    string          `json:"textPreview"`
	Questions      []quiz.Question `json:"questions"`
	ProcessingTime int64           `json:"processingTime"`
	WordCount      int             `json:"wordCount"`
}

type statusResponse struct {
	Status         string   `json:"status"`
	MaxFileSize    string   `json:"maxFileSize"`
	AllowedFormats []string `json:"allowedFormats"`
	Features       []string `json:"features"`
}

var features = []string{"MCQ Generation", "Text Extraction", "Multiple Formats", "Quiz Editing", "Export"}

type handler struct {
	svc *uploadsvc.Service
}

func (h *handler) HandleStatus(c fiber.Ctx) error {
	formats := make([]string, 0, len(config.Cfg.Upload.AllowedTypes))
	for _, m := range config.Cfg.Upload.AllowedTypes {
		if k := extract.KindOfMime(m); k != extract.KindUnknown {
			formats = append(formats, strings.ToUpper(string(k)))
		}
	}
	return apperror.Success(config.ModuleUpload, c, apperror.FiberSuccessMessage{
		Code:    status.OK,
		Message: "upload service status",
		Data: statusResponse{
			Status:         "active",
			MaxFileSize:    humanSize(config.Cfg.Upload.MaxFileSize),
			AllowedFormats: formats,
			Features:       features,
		},
	})
}

func (h *handler) HandleUpload(c fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return apperror.Coded(config.ModuleUpload, c, status.NoFile, uploadsvc.ErrNoFile.Error())
	}

	file, err := fh.Open()
	if err != nil {
		return apperror.Coded(config.ModuleUpload, c, status.InvalidFile, "cannot open file")
	}
	defer file.Close()

	q, err := h.svc.Process(context.Background(), uploadsvc.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Body:        file,
	}, requestid.FromContext(c))
	if err != nil {
		return apperror.FromError(config.ModuleUpload, c, err)
	}

	return apperror.Success(config.ModuleUpload, c, apperror.FiberSuccessMessage{
		Code:    status.OK,
		Message: "Quiz generated successfully",
		Data: uploadResponse{
			QuizID:         q.ID,
			FileName:       q.FileName,
			FileType:       q.FileType,
			TotalSlides:    q.TotalSlides,
			TextPreview:    q.TextPreview,
			Questions:      q.Questions,
			ProcessingTime: q.ProcessingTimeMs,
			WordCount:      q.WordCount,
		},
	})
}

// humanSize renders whole megabytes as "20MB" and anything else in bytes.
func humanSize(n int64) string {
	const mb = 1 << 20
	if n > 0 && n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	return fmt.Sprintf("%dB", n)
}
