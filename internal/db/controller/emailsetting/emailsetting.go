// Package emailsetting reads and upserts the outbound mail configuration.
package emailsetting

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/growfastwithus/growfast/internal/db/controller"
	"github.com/growfastwithus/growfast/internal/db/models"
)

// ErrEmailSettingNotFound is returned when no active row exists.
var ErrEmailSettingNotFound = errors.New("email settings not found")

// Changes holds the fields of a partial update, nil means keep the stored value.
// SMTPPassword must already be sealed.
type Changes struct {
	Provider          *string
	SMTPHost          *string
	SMTPPort          *int
	SMTPUser          *string
	SMTPPassword      *string
	SMTPSecure        *bool
	FromEmail         *string
	FromName          *string
	ContactEmail      *string
	NotificationEmail *string
	NotifyOnContact   *bool
	IsActive          *bool
}

// apply copies set fields onto row and returns their column names.
func (c Changes) apply(row *models.EmailSetting) []string {
	var cols []string

	setString := func(col string, src *string, dst *string) {
		if src != nil {
			*dst = *src
			cols = append(cols, col)
		}
	}

	setBool := func(col string, src *bool, dst *bool) {
		if src != nil {
			*dst = *src
			cols = append(cols, col)
		}
	}

	setString("provider", c.Provider, &row.Provider)
	setString("smtp_host", c.SMTPHost, &row.SMTPHost)
	setString("smtp_user", c.SMTPUser, &row.SMTPUser)
	setString("smtp_password", c.SMTPPassword, &row.SMTPPassword)
	setString("from_email", c.FromEmail, &row.FromEmail)
	setString("from_name", c.FromName, &row.FromName)
	setString("contact_email", c.ContactEmail, &row.ContactEmail)
	setString("notification_email", c.NotificationEmail, &row.NotificationEmail)
	setBool("smtp_secure", c.SMTPSecure, &row.SMTPSecure)
	setBool("notify_on_contact", c.NotifyOnContact, &row.NotifyOnContact)
	setBool("is_active", c.IsActive, &row.IsActive)

	if c.SMTPPort != nil {
		row.SMTPPort = *c.SMTPPort
		cols = append(cols, "smtp_port")
	}

	return cols
}

// GetActive returns the active settings row.
func GetActive(db *gorm.DB) (*models.EmailSetting, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var e models.EmailSetting

	err := db.Where("name = ? AND is_active = ?", models.EmailSettingDefault, true).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmailSettingNotFound
		}

		return nil, err
	}

	return &e, nil
}

// Save upserts the default row in one statement. Only supplied fields are
// written to an existing row, so a missing password keeps the stored one.
func Save(db *gorm.DB, changes Changes) (*models.EmailSetting, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	row := models.EmailSetting{
		Name:            models.EmailSettingDefault,
		Provider:        "smtp",
		SMTPPort:        587, //nolint:mnd
		NotifyOnContact: true,
		IsActive:        true,
	}

	cols := append(changes.apply(&row), "updated_at")

	err := db.Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns(cols),
		},
		clause.Returning{},
	).Create(&row).Error
	if err != nil {
		return nil, err
	}

	if db.Dialector.Name() == "mysql" {
		var stored models.EmailSetting

		return &stored, db.Where("name = ?", models.EmailSettingDefault).First(&stored).Error
	}

	return &row, nil
}
