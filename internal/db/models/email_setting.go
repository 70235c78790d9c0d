package models

import "time"

// EmailSettingDefault is the name of the singleton email settings row.
const EmailSettingDefault = "default"

// EmailSetting configures outbound notification mail.
// SMTPPassword holds the sealed value and is never serialized.
type EmailSetting struct {
	ID                uint64    `gorm:"primaryKey"                     json:"id"`
	Name              string    `gorm:"size:50;not null;unique"        json:"name"`
	Provider          string    `gorm:"size:50;default:'smtp'"         json:"provider"`
	SMTPHost          string    `gorm:"column:smtp_host;size:255"      json:"smtpHost"`
	SMTPPort          int       `gorm:"column:smtp_port"               json:"smtpPort"`
	SMTPUser          string    `gorm:"column:smtp_user;size:255"      json:"smtpUser"`
	SMTPPassword      string    `gorm:"column:smtp_password;type:text" json:"-"`
	SMTPSecure        bool      `gorm:"column:smtp_secure"             json:"smtpSecure"`
	FromEmail         string    `gorm:"size:255"                       json:"fromEmail"`
	FromName          string    `gorm:"size:200"                       json:"fromName"`
	ContactEmail      string    `gorm:"size:255"                       json:"contactEmail"`
	NotificationEmail string    `gorm:"size:255"                       json:"notificationEmail"`
	NotifyOnContact   bool      `gorm:"not null"                       json:"notifyOnContact"`
	IsActive          bool      `gorm:"not null"                       json:"isActive"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// TableName specifies the database table name for the EmailSetting model.
func (EmailSetting) TableName() string {
	return "email_settings"
}

// HasPassword reports whether a password is stored.
func (e *EmailSetting) HasPassword() bool {
	return e.SMTPPassword != ""
}

// Recipient is where contact notifications go.
func (e *EmailSetting) Recipient() string {
	if e.NotificationEmail != "" {
		return e.NotificationEmail
	}

	return e.ContactEmail
}
