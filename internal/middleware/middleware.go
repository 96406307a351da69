package middleware

import (
	"runtime/debug"
	"time"

	"quizgen/config"
	"quizgen/pkg/apperror"
	"quizgen/pkg/apperror/status"
	"quizgen/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

// ConnectionLimiter limits the number of concurrent connections
type ConnectionLimiter struct {
	limit    int
	waitlist chan struct{}
}

func NewConnectionLimiter(limit int) *ConnectionLimiter {
	return &ConnectionLimiter{
		limit:    limit,
		waitlist: make(chan struct{}, limit),
	}
}

func (cl *ConnectionLimiter) Acquire() bool {
	select {
	case cl.waitlist <- struct{}{}:
		return true
	default:
		return false
	}
}

func (cl *ConnectionLimiter) Release() {
	select {
	case <-cl.waitlist:
	default:
	}
}

// Setup installs the middleware chain: panic recovery, request id, access log,
// connection limiting and CORS.
func Setup(app *fiber.App) {
	app.Use(panicRecoveryMiddleware())
	app.Use(requestid.New())
	app.Use(accessLogMiddleware())
	app.Use(connectionLimiterMiddleware(NewConnectionLimiter(config.Cfg.Server.Concurrency)))
	logger.WithModule(config.ModuleCors).WithField("origins", config.Cfg.Cors.AllowOrigins).Debug("cors: enabled")
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.Cfg.Cors.AllowOrigins,
		AllowMethods: config.Cfg.Cors.AllowMethods,
		AllowHeaders: config.Cfg.Cors.AllowHeaders,
	}))
}

// connectionLimiterMiddleware creates a middleware for connection limiting
func connectionLimiterMiddleware(limiter *ConnectionLimiter) fiber.Handler {
	return func(c fiber.Ctx) error {
		if !limiter.Acquire() {
			return c.Status(fiber.StatusServiceUnavailable).SendString("Server is at maximum capacity")
		}
		defer limiter.Release()
		return c.Next()
	}
}

func accessLogMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.WithFields(map[string]interface{}{
			"module":     string(config.ModuleServer),
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     c.Response().StatusCode(),
			"latency_ms": time.Since(start).Milliseconds(),
			"request_id": requestid.FromContext(c),
		}).Debug("http request")
		return err
	}
}

// panicRecoveryMiddleware creates a middleware for panic recovery
func panicRecoveryMiddleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				logger.WithFields(map[string]interface{}{
					"panic":      r,
					"method":     c.Method(),
					"path":       c.Path(),
					"ip":         c.IP(),
					"user_agent": c.Get("User-Agent"),
					"stack":      string(stack),
				}).Errorf("Panic recovered")

				err = c.Status(fiber.StatusInternalServerError).JSON(apperror.ErrorResponse{
					Error:     "An unexpected error occurred",
					ErrorCode: apperror.Code(status.Internal),
				})
			}
		}()
		return c.Next()
	}
}
