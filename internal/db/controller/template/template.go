// Package template reads and creates catalog templates.
package template

import (
	"errors"

	"gorm.io/gorm"

	"github.com/growfastwithus/growfast/internal/db/controller"
	"github.com/growfastwithus/growfast/internal/db/models"
)

// ErrTemplateNotFound is returned when a template does not exist.
var ErrTemplateNotFound = errors.New("template not found")

// List returns templates, popular first, optionally filtered by category.
func List(db *gorm.DB, category string) ([]models.Template, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	q := db.Order("popular DESC, id ASC")
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var templates []models.Template
	if err := q.Find(&templates).Error; err != nil {
		return nil, err
	}

	return templates, nil
}

// Get returns the template with id.
func Get(db *gorm.DB, id uint64) (*models.Template, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var t models.Template
	if err := db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}

		return nil, err
	}

	return &t, nil
}

// Create inserts t.
func Create(db *gorm.DB, t *models.Template) error {
	if db == nil {
		return controller.ErrDBNil
	}

	return db.Create(t).Error
}

// Count returns the number of templates.
func Count(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, controller.ErrDBNil
	}

	var n int64

	return n, db.Model(&models.Template{}).Count(&n).Error
}

// SeedIfEmpty inserts templates when the table has no rows.
// It reports whether anything was inserted.
func SeedIfEmpty(db *gorm.DB, templates []models.Template) (bool, error) {
	n, err := Count(db)
	if err != nil || n > 0 || len(templates) == 0 {
		return false, err
	}

	rows := make([]models.Template, len(templates))
	copy(rows, templates)

	for i := range rows {
		rows[i].ID = 0
	}

	if err := db.Create(&rows).Error; err != nil {
		return false, err
	}

	return true, nil
}
