package models

import (
	"time"
)

// DefaultJobColor is the color assigned to jobs created automatically
// from ingested emails.
const DefaultJobColor = "#3B82F6"

// Job represents a company or workstream grouping, keyed per user by
// company name. The ingestion pipeline creates one lazily the first time
// a company name is seen.
type Job struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Company   string    `gorm:"size:100;not null" json:"company"`
	Color     string    `gorm:"size:7;default:'#3B82F6'" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Tasks    []Task    `gorm:"foreignKey:JobID" json:"tasks,omitempty"`
	Meetings []Meeting `gorm:"foreignKey:JobID" json:"meetings,omitempty"`
}
