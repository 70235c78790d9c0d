// Package review manages customer testimonials. Reviews are never deleted,
// Deactivate hides them instead.
package review

import (
	"errors"

	"gorm.io/gorm"

	"github.com/growfastwithus/growfast/internal/db/controller"
	"github.com/growfastwithus/growfast/internal/db/models"
)

// ErrReviewNotFound is returned when a review does not exist.
var ErrReviewNotFound = errors.New("review not found")

// Changes holds the fields of a partial update, nil means unchanged.
type Changes struct {
	Name     *string
	Company  *string
	Position *string
	Rating   *int
	Content  *string
	IsActive *bool
}

func (c Changes) columns() map[string]any {
	out := map[string]any{}

	if c.Name != nil {
		out["name"] = *c.Name
	}

	if c.Company != nil {
		out["company"] = *c.Company
	}

	if c.Position != nil {
		out["position"] = *c.Position
	}

	if c.Rating != nil {
		out["rating"] = *c.Rating
	}

	if c.Content != nil {
		out["content"] = *c.Content
	}

	if c.IsActive != nil {
		out["is_active"] = *c.IsActive
	}

	return out
}

// Stats summarizes the active reviews.
type Stats struct {
	Active        int64   `json:"active"`
	Total         int64   `json:"total"`
	AverageRating float64 `json:"averageRating"`
}

// List returns reviews newest first, only active ones unless includeInactive.
func List(db *gorm.DB, includeInactive bool) ([]models.Review, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	q := db.Order("created_at DESC, id DESC")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}

	var reviews []models.Review
	if err := q.Find(&reviews).Error; err != nil {
		return nil, err
	}

	return reviews, nil
}

// Get returns the review with id.
func Get(db *gorm.DB, id uint64) (*models.Review, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var r models.Review
	if err := db.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}

		return nil, err
	}

	return &r, nil
}

// Create inserts r.
func Create(db *gorm.DB, r *models.Review) error {
	if db == nil {
		return controller.ErrDBNil
	}

	return db.Create(r).Error
}

// Update applies changes to the review with id and returns the stored row.
func Update(db *gorm.DB, id uint64, changes Changes) (*models.Review, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	cols := changes.columns()
	if len(cols) > 0 {
		res := db.Model(&models.Review{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return nil, res.Error
		}

		if res.RowsAffected == 0 {
			return nil, ErrReviewNotFound
		}
	}

	return Get(db, id)
}

// Deactivate hides the review with id. The row stays.
func Deactivate(db *gorm.DB, id uint64) error {
	inactive := false

	_, err := Update(db, id, Changes{IsActive: &inactive})

	return err
}

// Count returns the number of rows, active or not.
func Count(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, controller.ErrDBNil
	}

	var n int64

	return n, db.Model(&models.Review{}).Count(&n).Error
}

// GetStats returns the review counters.
func GetStats(db *gorm.DB) (Stats, error) {
	var s Stats

	if db == nil {
		return s, controller.ErrDBNil
	}

	total, err := Count(db)
	if err != nil {
		return s, err
	}

	s.Total = total

	var row struct {
		Active int64
		Avg    *float64
	}

	err = db.Model(&models.Review{}).
		Select("COUNT(*) AS active, AVG(rating) AS avg").
		Where("is_active = ?", true).
		Scan(&row).Error
	if err != nil {
		return s, err
	}

	s.Active = row.Active
	if row.Avg != nil {
		s.AverageRating = *row.Avg
	}

	return s, nil
}
