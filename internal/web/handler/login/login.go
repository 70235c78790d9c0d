package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/growfastwithus/growfast/internal/auth"
	"github.com/growfastwithus/growfast/internal/config"
	"github.com/growfastwithus/growfast/internal/web/handler"
	"github.com/growfastwithus/growfast/internal/web/session"
)

const (
	// Path is the path of the login endpoint.
	Path = handler.AdminPrefix + "/login"

	// SessionPath is the path of the session check.
	SessionPath = handler.AdminPrefix + "/session"
)

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg  *config.Config
	deps *handler.Deps
}

// Handler is the login handler.
var Handler = Service{} //nolint:gochecknoglobals

// Request is the login body.
type Request struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=200"`
	Code     string `json:"code"     validate:"omitempty,numeric,len=6"`
}

// Response is the login answer.
type Response struct {
	Success bool             `json:"success"`
	User    session.Identity `json:"user"`
}

// SessionResponse is the session check answer.
type SessionResponse struct {
	Authenticated bool              `json:"authenticated"`
	User          *session.Identity `json:"user,omitempty"`
}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if err := handler.CheckInit(app, cfg, deps); err != nil {
		return err
	}

	s.cfg = cfg
	s.deps = deps

	// register routes
	app.Post(Path, handler.Limit(deps.LoginLimiter), s.Post)
	app.Get(SessionPath, s.Session)

	return nil
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	var req Request
	if ok, err := handler.Bind(c, &req); !ok {
		return err
	}

	user, err := s.deps.Auth.Login(req.Username, req.Password, req.Code)
	if err != nil {
		return s.loginFailed(c, req.Username, err)
	}

	identity := s.deps.Auth.IdentityFor(user, "")

	if _, err = s.deps.Sessions.Create(c, identity); err != nil {
		log.Error().Err(err).Msg("failed to write session")

		return handler.InternalError(c)
	}

	log.Info().Str("username", identity.Username).Str("source", identity.Source).Msg("admin logged in")

	return c.JSON(Response{Success: true, User: identity})
}

func (s *Service) loginFailed(c *fiber.Ctx, username string, err error) error {
	switch {
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrInvalidPassword):
		log.Warn().Str("username", username).Msg("failed login")

		return handler.JSONError(c, fiber.StatusUnauthorized, ErrInvalidCredentials.Error())
	case errors.Is(err, auth.ErrUserAccountDisabled):
		return handler.JSONError(c, fiber.StatusUnauthorized, ErrAccountDisabled.Error())
	case errors.Is(err, auth.ErrTOTPRequired):
		return c.Status(fiber.StatusUnauthorized).JSON(handler.ErrorResponse{
			Error:        ErrTOTPRequired.Error(),
			TOTPRequired: true,
		})
	case errors.Is(err, auth.ErrInvalidTOTP):
		return c.Status(fiber.StatusUnauthorized).JSON(handler.ErrorResponse{
			Error:        ErrInvalidTOTP.Error(),
			TOTPRequired: true,
		})
	default:
		log.Error().Err(err).Str("username", username).Msg("login failed")

		return handler.InternalError(c)
	}
}

// Session reports whether the caller holds a valid session.
func (s *Service) Session(c *fiber.Ctx) error {
	data, err := s.deps.Sessions.Read(c)
	if err != nil {
		return c.JSON(SessionResponse{Authenticated: false})
	}

	identity, err := s.deps.Auth.Refresh(data.Identity)
	if err != nil {
		return c.JSON(SessionResponse{Authenticated: false})
	}

	return c.JSON(SessionResponse{Authenticated: true, User: &identity})
}
