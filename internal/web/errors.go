package web

import (
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/growfastwithus/growfast/internal/web/handler"
)

// requestIDKey is where the requestid middleware keeps the id.
const requestIDKey = "requestid"

// ErrorHandler answers errors returned by handlers. Server errors are logged,
// reported to sentry and answered with a generic body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := handler.MsgInternalError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code

		if code < fiber.StatusInternalServerError {
			msg = fe.Message
		}
	}

	if code >= fiber.StatusInternalServerError {
		requestID, _ := c.Locals(requestIDKey).(string)

		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("request_id", requestID).
			Msg("request failed")

		report(err, c.Method(), c.Path(), requestID)
	}

	return c.Status(code).JSON(handler.ErrorResponse{Error: msg})
}

// report sends err to sentry when a client is configured.
func report(err error, method, path, requestID string) {
	hub := sentry.CurrentHub()
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("method", method)
		scope.SetTag("path", path)

		if requestID != "" {
			scope.SetTag("request_id", requestID)
		}

		hub.CaptureException(err)
	})
}
