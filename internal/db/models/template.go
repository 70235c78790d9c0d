package models

import "time"

// Template is an automation offering shown in the catalog.
type Template struct {
	ID          uint64    `gorm:"primaryKey"                json:"id"`
	Title       string    `gorm:"size:200;not null"         json:"title"`
	Description string    `gorm:"type:text"                 json:"description"`
	Price       string    `gorm:"size:50"                   json:"price"`
	Category    string    `gorm:"size:100;index"            json:"category"`
	Icon        string    `gorm:"size:100"                  json:"icon"`
	Features    []string  `gorm:"type:text;serializer:json" json:"features"`
	Popular     bool      `gorm:"default:false"             json:"popular"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the database table name for the Template model.
func (Template) TableName() string {
	return "templates"
}
