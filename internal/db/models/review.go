package models

import "time"

// Review is a customer testimonial. Deleting flips IsActive.
type Review struct {
	ID        uint64    `gorm:"primaryKey"                  json:"id"`
	Name      string    `gorm:"size:200;not null"           json:"name"`
	Company   string    `gorm:"size:200"                    json:"company"`
	Position  string    `gorm:"size:200"                    json:"position"`
	Rating    int       `gorm:"not null;default:5"          json:"rating"`
	Content   string    `gorm:"type:text;not null"          json:"content"`
	IsActive  bool      `gorm:"not null;index"             json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the database table name for the Review model.
func (Review) TableName() string {
	return "reviews"
}
