// Package mailer sends notification emails over SMTP with the settings stored in the database.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/growfastwithus/growfast/internal/db/models"
	"github.com/growfastwithus/growfast/internal/secret"
)

var (
	// ErrUnknownTemplate is returned for template names without a body.
	ErrUnknownTemplate = errors.New("mailer: unknown template")

	// ErrNotConfigured is returned when host or sender are missing.
	ErrNotConfigured = errors.New("mailer: smtp host or sender missing")

	// ErrNoRecipient is returned when a message has no recipient.
	ErrNoRecipient = errors.New("mailer: no recipient")
)

// Message is one outgoing email.
type Message struct {
	To       []string
	Subject  string
	Template string
	Data     any
}

// Sender delivers a message with the given settings.
type Sender interface {
	Send(ctx context.Context, settings models.EmailSetting, msg Message) error
}

// SMTPSender sends with gomail. The stored password is opened with box.
type SMTPSender struct {
	box  *secret.Box
	dial func(d *gomail.Dialer, m *gomail.Message) error
}

var _ Sender = (*SMTPSender)(nil)

// NewSMTPSender creates a sender.
func NewSMTPSender(box *secret.Box) *SMTPSender {
	return &SMTPSender{
		box: box,
		dial: func(d *gomail.Dialer, m *gomail.Message) error {
			return d.DialAndSend(m)
		},
	}
}

// Build renders msg into a gomail message.
func Build(settings models.EmailSetting, msg Message) (*gomail.Message, error) {
	if settings.SMTPHost == "" || settings.FromEmail == "" {
		return nil, ErrNotConfigured
	}

	if len(msg.To) == 0 {
		return nil, ErrNoRecipient
	}

	body, err := Render(msg.Template, msg.Data)
	if err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", settings.FromEmail, settings.FromName)
	m.SetHeader("To", msg.To...)

	if settings.ContactEmail != "" {
		m.SetHeader("Reply-To", settings.ContactEmail)
	}

	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", body)

	return m, nil
}

// Send delivers msg. It returns when the smtp dialog ends or ctx is done.
func (s *SMTPSender) Send(ctx context.Context, settings models.EmailSetting, msg Message) error {
	m, err := Build(settings, msg)
	if err != nil {
		return err
	}

	password, err := s.box.Open(settings.SMTPPassword)
	if err != nil {
		return fmt.Errorf("failed to open smtp password: %w", err)
	}

	d := gomail.NewDialer(settings.SMTPHost, settings.SMTPPort, settings.SMTPUser, password)
	d.SSL = settings.SMTPSecure

	done := make(chan error, 1)

	go func() {
		done <- s.dial(d, m)
	}()

	select {
	case err = <-done:
		if err != nil {
			return fmt.Errorf("error sending email: %w", err)
		}

		return nil
	case <-ctx.Done():
		return ctx.Err() //nolint:wrapcheck
	}
}
