// Package setting reads and upserts site settings.
package setting

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/growfastwithus/growfast/internal/db/controller"
	"github.com/growfastwithus/growfast/internal/db/models"
)

const (
	keyQueryPattern = "setting_key = ?"
	keyColumn       = "setting_key"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingKeyEmpty is returned when attempting to write a setting with an empty key.
	ErrSettingKeyEmpty = errors.New("setting key cannot be empty")
	// ErrSettingTypeInvalid is returned for unknown value types.
	ErrSettingTypeInvalid = errors.New("setting type is not supported")
)

var validTypes = map[string]struct{}{ //nolint:gochecknoglobals
	models.SettingTypeText:    {},
	models.SettingTypeJSON:    {},
	models.SettingTypeURL:     {},
	models.SettingTypeColor:   {},
	models.SettingTypeBoolean: {},
}

// ValidType reports whether t is a known setting type.
func ValidType(t string) bool {
	_, ok := validTypes[t]

	return ok
}

// Get retrieves a setting by its key.
func Get(db *gorm.DB, key string) (*models.SiteSetting, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var s models.SiteSetting
	if err := db.Where(keyQueryPattern, key).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, err
	}

	return &s, nil
}

// GetAll retrieves all settings ordered by category and key.
// An empty category returns every setting.
func GetAll(db *gorm.DB, category string) ([]models.SiteSetting, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	q := db.Order("category, setting_key")
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var settings []models.SiteSetting
	if err := q.Find(&settings).Error; err != nil {
		return nil, err
	}

	return settings, nil
}

// Upsert inserts s or updates the row with the same key in one statement.
// Value is always written, Type and Category only when set.
// The stored row is returned.
func Upsert(db *gorm.DB, s models.SiteSetting) (*models.SiteSetting, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	s.Key = strings.TrimSpace(s.Key)
	if s.Key == "" {
		return nil, ErrSettingKeyEmpty
	}

	update := []string{"value", "updated_at"}

	if s.Type != "" {
		if !ValidType(s.Type) {
			return nil, ErrSettingTypeInvalid
		}

		update = append(update, "type")
	} else {
		s.Type = models.SettingTypeText
	}

	if s.Category != "" {
		update = append(update, "category")
	} else {
		s.Category = models.SettingCategoryGeneral
	}

	row := models.SiteSetting{
		Key:      s.Key,
		Value:    s.Value,
		Type:     s.Type,
		Category: s.Category,
	}

	err := db.Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: keyColumn}},
			DoUpdates: clause.AssignmentColumns(update),
		},
		clause.Returning{},
	).Create(&row).Error
	if err != nil {
		return nil, err
	}

	// mysql has no RETURNING, read the row back.
	if db.Dialector.Name() == "mysql" {
		return Get(db, s.Key)
	}

	return &row, nil
}

// UpsertMany upserts every setting. It stops at the first error.
func UpsertMany(db *gorm.DB, settings []models.SiteSetting) ([]models.SiteSetting, error) {
	out := make([]models.SiteSetting, 0, len(settings))

	for _, s := range settings {
		stored, err := Upsert(db, s)
		if err != nil {
			return out, err
		}

		out = append(out, *stored)
	}

	return out, nil
}

// SeedMissing inserts the settings whose key is not stored yet, stored
// values are kept. It returns the number of inserted rows.
func SeedMissing(db *gorm.DB, settings []models.SiteSetting) (int64, error) {
	if db == nil {
		return 0, controller.ErrDBNil
	}

	if len(settings) == 0 {
		return 0, nil
	}

	rows := make([]models.SiteSetting, len(settings))
	copy(rows, settings)

	for i := range rows {
		rows[i].ID = 0
	}

	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: keyColumn}},
		DoNothing: true,
	}).Create(&rows)

	return res.RowsAffected, res.Error
}

// Set upserts a text value under key keeping its stored type and category.
func Set(db *gorm.DB, key, value string) (*models.SiteSetting, error) {
	return Upsert(db, models.SiteSetting{Key: key, Value: value})
}

// Values returns all settings as key to value map.
func Values(db *gorm.DB) (map[string]string, error) {
	settings, err := GetAll(db, "")
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}

	return out, nil
}
