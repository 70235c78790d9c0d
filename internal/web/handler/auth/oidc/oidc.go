package oidc

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/growfastwithus/growfast/internal/auth"
	"github.com/growfastwithus/growfast/internal/config"
	"github.com/growfastwithus/growfast/internal/db/models"
	"github.com/growfastwithus/growfast/internal/web/handler"
)

const (
	// LoginPath is the path to initiate OIDC login.
	LoginPath = handler.RootPath + "auth/oidc/login"

	// CallbackPath is the path for OIDC callback.
	CallbackPath = handler.RootPath + "auth/oidc/callback"

	// LogoutPath is the path for OIDC logout.
	LogoutPath = handler.RootPath + "auth/oidc/logout"

	// StateTTL bounds the time between login and callback.
	StateTTL = 5 * time.Minute

	// StateCookie binds the state to the browser that started the login.
	StateCookie = "oidc_state"

	statePrefix = "oidc_state:"
)

// Provider is the part of auth.OIDCProvider the handler uses.
type Provider interface {
	GetAuthURL(state string) string
	HandleCallback(ctx context.Context, code string) (*models.AdminUser, error)
	GetLogoutURL(postLogoutRedirectURI string) string
}

// Service is the OIDC handler service.
type Service struct {
	handler.Service
	deps     *handler.Deps
	provider Provider
	baseURL  string
	secure   bool
}

// Handler is the OIDC handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init registers the routes when a provider is configured.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if err := handler.CheckInit(app, cfg, deps); err != nil {
		return err
	}

	s.deps = deps
	s.baseURL = cfg.Webserver.URL
	s.secure = !cfg.DevMode

	if s.provider == nil && deps.OIDC != nil {
		s.provider = deps.OIDC
	}

	if s.provider == nil {
		log.Info().Msg("OIDC authentication is disabled")

		return nil
	}

	app.Get(LoginPath, s.Login)
	app.Get(CallbackPath, s.Callback)
	app.Get(LogoutPath, s.Logout)

	return nil
}

// Login initiates the OIDC login flow.
func (s *Service) Login(c *fiber.Ctx) error {
	// state token for CSRF protection
	state, err := auth.GenerateStateToken()
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate state token")

		return handler.InternalError(c)
	}

	if err = s.deps.Sessions.Storage().Set(statePrefix+state, []byte{1}, StateTTL); err != nil {
		log.Error().Err(err).Msg("Failed to store state token")

		return handler.InternalError(c)
	}

	s.setStateCookie(c, state, time.Now().Add(StateTTL))

	return c.Redirect(s.provider.GetAuthURL(state))
}

func (s *Service) setStateCookie(c *fiber.Ctx, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     StateCookie,
		Value:    value,
		Path:     CallbackPath,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// consumeState reports whether state was issued and not yet used.
func (s *Service) consumeState(state string) bool {
	storage := s.deps.Sessions.Storage()

	raw, err := storage.Get(statePrefix + state)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read state token")

		return false
	}

	if len(raw) == 0 {
		return false
	}

	if err = storage.Delete(statePrefix + state); err != nil {
		log.Warn().Err(err).Msg("Failed to delete state token")
	}

	return true
}

// Callback handles the OIDC callback.
func (s *Service) Callback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")

	if code == "" || state == "" {
		log.Warn().Msg("Missing code or state in OIDC callback")

		return handler.JSONError(c, fiber.StatusBadRequest, "invalid callback parameters")
	}

	cookieState := c.Cookies(StateCookie)
	s.setStateCookie(c, "", time.Unix(0, 0))

	if subtle.ConstantTimeCompare([]byte(cookieState), []byte(state)) != 1 {
		log.Warn().Msg("OIDC state does not match the browser")

		return handler.JSONError(c, fiber.StatusBadRequest, "invalid state token")
	}

	if !s.consumeState(state) {
		log.Warn().Msg("Invalid or expired state token")

		return handler.JSONError(c, fiber.StatusBadRequest, "invalid state token")
	}

	user, err := s.provider.HandleCallback(c.UserContext(), code)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUnknownSubject), errors.Is(err, auth.ErrUserAccountDisabled):
			log.Warn().Err(err).Msg("OIDC sign in rejected")

			return handler.JSONError(c, fiber.StatusForbidden, "account not allowed")
		default:
			log.Error().Err(err).Msg("OIDC authentication failed")

			return handler.JSONError(c, fiber.StatusUnauthorized, "authentication failed")
		}
	}

	if _, err = s.deps.Sessions.Create(c, s.deps.Auth.IdentityFor(user, auth.SourceOIDC)); err != nil {
		log.Error().Err(err).Msg("Failed to write session")

		return handler.InternalError(c)
	}

	log.Info().Str("username", user.Username).Msg("User logged in successfully via OIDC")

	return c.Redirect(handler.RootPath)
}

// Logout ends the session and the provider session when supported.
func (s *Service) Logout(c *fiber.Ctx) error {
	if err := s.deps.Sessions.Destroy(c); err != nil {
		log.Warn().Err(err).Msg("Failed to delete session")
	}

	if logoutURL := s.provider.GetLogoutURL(s.baseURL); logoutURL != "" {
		return c.Redirect(logoutURL)
	}

	return c.Redirect(handler.RootPath)
}
