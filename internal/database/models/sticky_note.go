package models

import (
	"time"
)

// DefaultStickyNoteColor is the color assigned to notes created without one
const DefaultStickyNoteColor = "#FEF3C7"

// StickyNote is a free-form note owned by a user
type StickyNote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Color     string    `gorm:"size:7;default:'#FEF3C7'" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
