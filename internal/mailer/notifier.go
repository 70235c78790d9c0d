package mailer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/growfastwithus/growfast/internal/db/controller/emailsetting"
	"github.com/growfastwithus/growfast/internal/db/models"
)

// defaultTimeout bounds one notification when none is configured.
const defaultTimeout = 15 * time.Second

// Notifier sends new-contact notifications in the background.
type Notifier struct {
	db       *gorm.DB
	sender   Sender
	timeout  time.Duration
	siteName string
	wg       sync.WaitGroup
}

// NewNotifier creates a notifier. db may be nil, then nothing is sent.
func NewNotifier(db *gorm.DB, sender Sender, timeout time.Duration, siteName string) *Notifier {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Notifier{db: db, sender: sender, timeout: timeout, siteName: siteName}
}

// ContactCreated sends a notification for contact when the active email
// settings ask for it. It does not block and never fails the caller.
func (n *Notifier) ContactCreated(contact models.Contact) {
	if n == nil || n.db == nil || n.sender == nil {
		return
	}

	settings, err := emailsetting.GetActive(n.db)
	if err != nil {
		if !errors.Is(err, emailsetting.ErrEmailSettingNotFound) {
			log.Warn().Err(err).Msg("failed to read email settings for contact notification")
		}

		return
	}

	if !settings.NotifyOnContact || settings.Recipient() == "" {
		return
	}

	msg := Message{
		To:       []string{settings.Recipient()},
		Subject:  "New contact: " + contact.Name,
		Template: TemplateContact,
		Data: map[string]any{
			"Contact":  contact,
			"SiteName": n.siteName,
		},
	}

	n.wg.Add(1)

	go func(settings models.EmailSetting) {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		if errSend := n.sender.Send(ctx, settings, msg); errSend != nil {
			log.Error().Err(errSend).Uint64("contact_id", contact.ID).Msg("failed to send contact notification")

			return
		}

		log.Info().Uint64("contact_id", contact.ID).Msg("contact notification sent")
	}(*settings)
}

// Wait blocks until all started notifications finished.
func (n *Notifier) Wait() {
	if n != nil {
		n.wg.Wait()
	}
}
