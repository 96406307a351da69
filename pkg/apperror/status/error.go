package status

import "github.com/gofiber/fiber/v3"

// ErrorCode is a numeric code to classify API errors in a stable way
type ErrorCode int

// Reserved ranges:
//   0-999:     client errors
//   1000-1999: internal errors

const (
	BadRequestBase    ErrorCode = 0
	InternalErrorBase ErrorCode = 1000
)

// Client errors start at 0
const (
	InvalidRequestBody  ErrorCode = BadRequestBase + iota // 0
	NoFile                                                // 1
	InvalidFile                                           // 2
	FileTooLarge                                          // 3
	InsufficientContent                                   // 4
	QuizNotFound                                          // 5
	InvalidEdit                                           // 6
	RouteNotFound                                         // 7
)

// Internal errors start at 1000
const (
	Internal          ErrorCode = InternalErrorBase + iota // 1000
	ExtractionFailed                                       // 1001
	GenerationTimeout                                      // 1002
	GenerationFailed                                       // 1003
	StorageFailed                                          // 1004
)

var httpStatus = map[ErrorCode]int{
	InvalidRequestBody:  fiber.StatusBadRequest,
	NoFile:              fiber.StatusBadRequest,
	InvalidFile:         fiber.StatusBadRequest,
	FileTooLarge:        fiber.StatusRequestEntityTooLarge,
	InsufficientContent: fiber.StatusBadRequest,
	QuizNotFound:        fiber.StatusNotFound,
	InvalidEdit:         fiber.StatusBadRequest,
	RouteNotFound:       fiber.StatusNotFound,
	ExtractionFailed:    fiber.StatusUnprocessableEntity,
	GenerationTimeout:   fiber.StatusGatewayTimeout,
}

// HTTPStatus returns the response status for c. Unmapped codes are 500.
func (c ErrorCode) HTTPStatus() int {
	if s, ok := httpStatus[c]; ok {
		return s
	}
	return fiber.StatusInternalServerError
}

// CodedError represents an error with an associated ErrorCode
type CodedError interface {
	error
	ErrorCode() ErrorCode
}

type codedError struct {
	code ErrorCode
	err  error
}

func (e codedError) Error() string        { return e.err.Error() }
func (e codedError) Unwrap() error        { return e.err }
func (e codedError) ErrorCode() ErrorCode { return e.code }

// New creates a new CodedError with the given code and underlying error
func New(code ErrorCode, err error) error {
	if err == nil {
		return nil
	}
	return codedError{code: code, err: err}
}
