package models

import "time"

// Contact is a lead captured by the public contact form. Rows are never updated.
type Contact struct {
	ID           uint64    `gorm:"primaryKey"                json:"id"`
	Name         string    `gorm:"size:200;not null"         json:"name"`
	Email        string    `gorm:"size:255;not null;index"   json:"email"`
	Company      string    `gorm:"size:200"                  json:"company,omitempty"`
	Phone        string    `gorm:"size:50"                   json:"phone,omitempty"`
	Industry     string    `gorm:"size:100"                  json:"industry,omitempty"`
	BusinessSize string    `gorm:"size:50"                   json:"businessSize,omitempty"`
	PainPoints   []string  `gorm:"type:text;serializer:json" json:"painPoints,omitempty"`
	TimeSpent    *float64  `json:"timeSpent,omitempty"`
	Message      string    `gorm:"type:text"                 json:"message,omitempty"`
	CreatedAt    time.Time `gorm:"index"                     json:"createdAt"`
}

// TableName specifies the database table name for the Contact model.
func (Contact) TableName() string {
	return "contacts"
}
