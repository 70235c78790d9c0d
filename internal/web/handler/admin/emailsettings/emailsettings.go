// Package emailsettings edits the outbound mail configuration and sends test mails.
package emailsettings

import (
	"context"
	"errors"
	"time"

	"github.com/badoux/checkmail"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/growfastwithus/growfast/internal/auth"
	"github.com/growfastwithus/growfast/internal/config"
	"github.com/growfastwithus/growfast/internal/db/controller/emailsetting"
	"github.com/growfastwithus/growfast/internal/db/models"
	"github.com/growfastwithus/growfast/internal/defaults"
	"github.com/growfastwithus/growfast/internal/mailer"
	"github.com/growfastwithus/growfast/internal/web/handler"
)

const (
	// Path is the email settings endpoint.
	Path = handler.AdminPrefix + "/email-settings"

	// TestPath sends a test mail with the stored settings.
	TestPath = handler.AdminPrefix + "/test-email"

	defaultSendTimeout = 15 * time.Second
)

// Error messages of the test mail endpoint.
const (
	MsgNotConfigured = "email settings not configured"
	MsgSendFailed    = "failed to send email"
)

// Service is the email settings handler service.
type Service struct {
	handler.Service
	deps     *handler.Deps
	siteName string
	host     string
	timeout  time.Duration
}

// Handler is the email settings handler.
var Handler = Service{} //nolint:gochecknoglobals

// Response is the stored settings without the password.
type Response struct {
	models.EmailSetting
	HasPassword bool `json:"hasPassword"`
}

// Request is a partial update. An absent or empty smtpPassword keeps the stored one.
type Request struct {
	Provider          *string `json:"provider"          validate:"omitempty,oneof=smtp"`
	SMTPHost          *string `json:"smtpHost"          validate:"omitempty,max=255"`
	SMTPPort          *int    `json:"smtpPort"          validate:"omitempty,gte=1,lte=65535"`
	SMTPUser          *string `json:"smtpUser"          validate:"omitempty,max=255"`
	SMTPPassword      *string `json:"smtpPassword"      validate:"omitempty,max=1024"`
	SMTPSecure        *bool   `json:"smtpSecure"`
	FromEmail         *string `json:"fromEmail"`
	FromName          *string `json:"fromName"          validate:"omitempty,max=200"`
	ContactEmail      *string `json:"contactEmail"`
	NotificationEmail *string `json:"notificationEmail"`
	NotifyOnContact   *bool   `json:"notifyOnContact"`
	IsActive          *bool   `json:"isActive"`
}

// TestRequest names the recipient of a test mail, the notification
// recipient is used when empty.
type TestRequest struct {
	To string `json:"to"`
}

// Init initializes the email settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if err := handler.CheckInit(app, cfg, deps); err != nil {
		return err
	}

	s.deps = deps
	s.siteName = cfg.Title
	s.host = cfg.Webserver.URL

	s.timeout = cfg.Mail.Timeout
	if s.timeout <= 0 {
		s.timeout = defaultSendTimeout
	}

	write := auth.RequirePermission(auth.PermEmailWrite)

	app.Get(Path, s.Get)
	app.Put(Path, write, handler.RequireDB(deps), s.Put)
	app.Post(TestPath, write, handler.RequireDB(deps), s.Test)

	return nil
}

// Get returns the active settings or the defaults.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.JSON(respond(Current(s.deps)))
}

// Current reads the active settings and falls back to the defaults.
func Current(deps *handler.Deps) models.EmailSetting {
	if deps.DB == nil {
		return defaults.EmailSetting()
	}

	settings, err := emailsetting.GetActive(deps.DB)
	if err != nil {
		if !errors.Is(err, emailsetting.ErrEmailSettingNotFound) {
			log.Warn().Err(err).Msg("failed to read email settings, serving defaults")
		}

		return defaults.EmailSetting()
	}

	return *settings
}

func respond(settings models.EmailSetting) Response {
	return Response{EmailSetting: settings, HasPassword: settings.HasPassword()}
}

// Put validates and stores the settings. The password is sealed before it is written.
func (s *Service) Put(c *fiber.Ctx) error {
	var req Request
	if ok, err := handler.Bind(c, &req); !ok {
		return err
	}

	if details := checkAddresses(req); len(details) > 0 {
		return handler.ValidationError(c, details)
	}

	changes := emailsetting.Changes{
		Provider:          req.Provider,
		SMTPHost:          req.SMTPHost,
		SMTPPort:          req.SMTPPort,
		SMTPUser:          req.SMTPUser,
		SMTPSecure:        req.SMTPSecure,
		FromEmail:         req.FromEmail,
		FromName:          req.FromName,
		ContactEmail:      req.ContactEmail,
		NotificationEmail: req.NotificationEmail,
		NotifyOnContact:   req.NotifyOnContact,
		IsActive:          req.IsActive,
	}

	if req.SMTPPassword != nil && *req.SMTPPassword != "" {
		sealed, err := s.deps.Secret.Seal(*req.SMTPPassword)
		if err != nil {
			log.Error().Err(err).Msg("failed to seal smtp password")

			return handler.InternalError(c)
		}

		changes.SMTPPassword = &sealed
	}

	stored, err := emailsetting.Save(s.deps.DB, changes)
	if err != nil {
		log.Error().Err(err).Msg("failed to save email settings")

		return handler.InternalError(c)
	}

	return c.JSON(fiber.Map{"success": true, "settings": respond(*stored)})
}

// checkAddresses validates the address fields. Empty values clear a field.
func checkAddresses(req Request) []handler.FieldError {
	var out []handler.FieldError

	for _, f := range []struct {
		name  string
		value *string
	}{
		{"fromEmail", req.FromEmail},
		{"contactEmail", req.ContactEmail},
		{"notificationEmail", req.NotificationEmail},
	} {
		if f.value == nil || *f.value == "" {
			continue
		}

		if err := checkmail.ValidateFormat(*f.value); err != nil {
			out = append(out, handler.FieldError{Field: f.name, Message: f.name + " must be a valid email"})
		}
	}

	return out
}

// Test sends the test template with the stored settings.
func (s *Service) Test(c *fiber.Ctx) error {
	var req TestRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return handler.BadBody(c)
		}
	}

	settings, err := emailsetting.GetActive(s.deps.DB)
	if err != nil {
		if errors.Is(err, emailsetting.ErrEmailSettingNotFound) {
			return handler.JSONError(c, fiber.StatusBadRequest, MsgNotConfigured)
		}

		log.Error().Err(err).Msg("failed to read email settings")

		return handler.InternalError(c)
	}

	to := req.To
	if to == "" {
		to = settings.Recipient()
	}

	if err = checkmail.ValidateFormat(to); err != nil {
		return handler.ValidationError(c, []handler.FieldError{{Field: "to", Message: "to must be a valid email"}})
	}

	if s.deps.Mailer == nil {
		return handler.JSONError(c, fiber.StatusServiceUnavailable, MsgNotConfigured)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), s.timeout)
	defer cancel()

	err = s.deps.Mailer.Send(ctx, *settings, mailer.Message{
		To:       []string{to},
		Subject:  s.siteName + " test email",
		Template: mailer.TemplateTest,
		Data:     map[string]any{"SiteName": s.siteName, "Host": s.host},
	})
	if err != nil {
		if errors.Is(err, mailer.ErrNotConfigured) {
			return handler.JSONError(c, fiber.StatusBadRequest, MsgNotConfigured)
		}

		log.Error().Err(err).Str("to", to).Msg("failed to send test email")

		return handler.JSONError(c, fiber.StatusBadGateway, MsgSendFailed)
	}

	log.Info().Str("to", to).Msg("test email sent")

	return c.JSON(fiber.Map{"success": true})
}
