// Package contact stores and lists contact form submissions.
package contact

import (
	"gorm.io/gorm"

	"github.com/growfastwithus/growfast/internal/db/controller"
	"github.com/growfastwithus/growfast/internal/db/models"
)

// Create inserts c and fills its id and creation time.
func Create(db *gorm.DB, c *models.Contact) error {
	if db == nil {
		return controller.ErrDBNil
	}

	return db.Create(c).Error
}

// List returns contacts newest first.
func List(db *gorm.DB, page controller.Page) ([]models.Contact, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	page = page.Normalize()

	var contacts []models.Contact
	if err := db.Order("created_at DESC, id DESC").Limit(page.Limit).Offset(page.Offset).Find(&contacts).Error; err != nil {
		return nil, err
	}

	return contacts, nil
}

// Count returns the number of stored contacts.
func Count(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, controller.ErrDBNil
	}

	var n int64

	return n, db.Model(&models.Contact{}).Count(&n).Error
}
