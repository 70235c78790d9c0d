package models

import "time"

// Media is an uploaded file kept in the media directory.
type Media struct {
	ID           uint64    `gorm:"primaryKey"               json:"id"`
	FileName     string    `gorm:"size:100;not null;unique" json:"fileName"`
	OriginalName string    `gorm:"size:255"                 json:"originalName"`
	ContentType  string    `gorm:"size:100"                 json:"contentType"`
	Size         int64     `json:"size"`
	URL          string    `gorm:"size:500"                 json:"url"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TableName specifies the database table name for the Media model.
func (Media) TableName() string {
	return "media"
}
