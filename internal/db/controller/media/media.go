// Package media keeps the rows describing uploaded files.
package media

import (
	"errors"

	"gorm.io/gorm"

	"github.com/growfastwithus/growfast/internal/db/controller"
	"github.com/growfastwithus/growfast/internal/db/models"
)

// ErrMediaNotFound is returned when a media row does not exist.
var ErrMediaNotFound = errors.New("media not found")

// List returns media newest first.
func List(db *gorm.DB) ([]models.Media, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var media []models.Media
	if err := db.Order("created_at DESC, id DESC").Find(&media).Error; err != nil {
		return nil, err
	}

	return media, nil
}

// Create inserts m.
func Create(db *gorm.DB, m *models.Media) error {
	if db == nil {
		return controller.ErrDBNil
	}

	return db.Create(m).Error
}

// Get returns the media row with id.
func Get(db *gorm.DB, id uint64) (*models.Media, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var m models.Media
	if err := db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMediaNotFound
		}

		return nil, err
	}

	return &m, nil
}

// Delete removes the row with id.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return controller.ErrDBNil
	}

	res := db.Delete(&models.Media{}, id)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrMediaNotFound
	}

	return nil
}
