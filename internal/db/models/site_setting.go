package models

import "time"

// Setting value types.
const (
	SettingTypeText    = "text"
	SettingTypeJSON    = "json"
	SettingTypeURL     = "url"
	SettingTypeColor   = "color"
	SettingTypeBoolean = "boolean"

	// SettingCategoryGeneral is used when no category was given.
	SettingCategoryGeneral = "general"
	// SettingCategoryTheme holds the color settings rendered as css variables.
	SettingCategoryTheme = "theme"
)

// SiteSetting is a key value row for site copy and theme values.
// Key is stored as setting_key, "key" is reserved in mysql.
type SiteSetting struct {
	ID        uint64    `gorm:"primaryKey"                                  json:"id"`
	Key       string    `gorm:"column:setting_key;size:191;not null;unique" json:"key"`
	Value     string    `gorm:"type:text"                                   json:"value"`
	Type      string    `gorm:"size:20;not null;default:'text'"             json:"type"`
	Category  string    `gorm:"size:100;not null;default:'general';index"   json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the database table name for the SiteSetting model.
func (SiteSetting) TableName() string {
	return "site_settings"
}
