package apperror

import (
	"errors"

	"quizgen/config"
	"quizgen/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
)

// FromError writes err using the code it carries. Errors without a code are
// reported as internal errors.
func FromError(module config.Module, c fiber.Ctx, err error) error {
	var coded status.CodedError
	if errors.As(err, &coded) {
		return Coded(module, c, coded.ErrorCode(), err.Error())
	}
	return InternalError(module, c, err)
}

// ErrorHandler is the fiber.Config ErrorHandler. It renders errors raised by
// fiber itself, such as an exceeded body limit, in the same envelope.
func ErrorHandler(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusRequestEntityTooLarge:
			return Coded(config.ModuleServer, c, status.FileTooLarge, "file size exceeds the upload limit")
		case fiber.StatusNotFound:
			return Coded(config.ModuleServer, c, status.RouteNotFound, fe.Message)
		case fiber.StatusInternalServerError:
			return InternalError(config.ModuleServer, c, fe)
		default:
			return WriteError(config.ModuleServer, c, fe.Code, Code(status.InvalidRequestBody), fe.Message)
		}
	}
	return FromError(config.ModuleServer, c, err)
}
