package middleware

import (
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
)

// Logger is a middleware that logs each HTTP request as one JSON line.
// Fields:
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path
// - status
// - latency (in milliseconds, as float)
func Logger(log *charmlog.Logger) fiber.Handler {
	log = log.With("component", "http")

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		log.Info("request",
			"request_id", rid,
			"method", c.Method(),
			"path", c.Path(),
			"status", statusOf(c, err),
			"latency", float64(time.Since(start).Microseconds())/1000,
		)

		return err
	}
}

// statusOf returns the status the client will see. When a handler returns an
// error, the global ErrorHandler has not written the response yet.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	if fiberErr, ok := err.(*fiber.Error); ok {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}
