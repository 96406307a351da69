package apperror

import (
	"fmt"

	"quizgen/config"
	"quizgen/pkg/apperror/status"
	"quizgen/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

// maxLoggedBody keeps multipart uploads out of the error log.
const maxLoggedBody = 2048

// ErrorResponse is the standardized HTTP error payload
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
}

type FiberSuccessMessage struct {
	Code       status.SuccessCode `json:"code"`
	Message    string             `json:"message"`
	TrackingID string             `json:"tracking_id"`
	Data       any                `json:"data"`
}

// Code renders an ErrorCode the way clients see it.
func Code(code status.ErrorCode) string {
	return fmt.Sprintf("QG-%d", code)
}

// WriteError logs a structured warning and returns a standardized JSON error
func WriteError(module config.Module, c fiber.Ctx, httpStatus int, code string, message string) error {
	body := c.Body()
	if len(body) > maxLoggedBody {
		body = body[:maxLoggedBody]
	}
	logger.WithFields(map[string]interface{}{
		"module":        string(module),
		"status_code":   httpStatus,
		"error_code":    code,
		"error_message": message,
		"http_method":   c.Method(),
		"path":          c.Path(),
		"url":           c.OriginalURL(),
		"ip":            c.IP(),
		"request_id":    requestid.FromContext(c),
		"body":          string(body),
	}).Warnf("http error")

	return c.Status(httpStatus).JSON(ErrorResponse{
		Error:     message,
		ErrorCode: code,
	})
}

// Coded writes an error whose HTTP status is derived from code.
func Coded(module config.Module, c fiber.Ctx, code status.ErrorCode, message string) error {
	return WriteError(module, c, code.HTTPStatus(), Code(code), message)
}

// Shorthands for common error responses
func BadRequest(module config.Module, c fiber.Ctx, code status.ErrorCode, message string) error {
	return WriteError(module, c, fiber.StatusBadRequest, Code(code), message)
}

func NotFound(module config.Module, c fiber.Ctx, code status.ErrorCode, message string) error {
	return WriteError(module, c, fiber.StatusNotFound, Code(code), message)
}

// InternalError writes a structured warning and returns a standardized JSON error
func InternalError(module config.Module, c fiber.Ctx, err error) error {
	return WriteError(module, c, fiber.StatusInternalServerError, Code(status.Internal), err.Error())
}

// Success writes a standardized JSON success response
func Success(module config.Module, c fiber.Ctx, response FiberSuccessMessage) error {
	if response.TrackingID == "" {
		response.TrackingID = requestid.FromContext(c)
	}
	return c.Status(fiber.StatusOK).JSON(response)
}
