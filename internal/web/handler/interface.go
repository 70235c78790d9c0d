package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/growfastwithus/growfast/internal/auth"
	"github.com/growfastwithus/growfast/internal/config"
	"github.com/growfastwithus/growfast/internal/mailer"
	"github.com/growfastwithus/growfast/internal/secret"
	"github.com/growfastwithus/growfast/internal/web/session"
)

// ErrNilInit is returned by Init when app, cfg or deps is nil.
var ErrNilInit = errors.New(ErrNilACDFatalLogMsg)

// Deps are the shared values handed to every handler.
type Deps struct {
	// DB is nil when no database is configured.
	DB       *gorm.DB
	Auth     *auth.Service
	Sessions *session.Manager
	Secret   *secret.Box
	Mailer   mailer.Sender
	Notifier *mailer.Notifier
	// OIDC is nil unless identity-provider sign in is enabled.
	OIDC *auth.OIDCProvider
	// ContactLimiter and LoginLimiter guard the public forms, nil disables them.
	ContactLimiter fiber.Handler
	LoginLimiter   fiber.Handler
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, deps *Deps) error
}

// CheckInit validates the Init arguments.
func CheckInit(app *fiber.App, cfg *config.Config, deps *Deps) error {
	if app == nil || cfg == nil || deps == nil {
		return ErrNilInit
	}

	return nil
}

// Limit returns h or a pass-through handler when h is nil.
func Limit(h fiber.Handler) fiber.Handler {
	if h != nil {
		return h
	}

	return func(c *fiber.Ctx) error { return c.Next() }
}

// RequireSession gates a route that lives outside the admin prefix.
func RequireSession(deps *Deps) fiber.Handler {
	return auth.RequireSession(deps.Auth, deps.Sessions)
}
