package models

import (
	"time"
)

// Update type values
const (
	UpdateTypeTask    = "task"
	UpdateTypeMeeting = "meeting"
	UpdateTypeEmail   = "email"
	UpdateTypeOther   = "other"
)

// UnknownCompany is the sentinel company name used when no company can be
// derived from the sender address.
const UnknownCompany = "Unknown"

// Update is a persisted record representing one classified, relevant inbound
// message. Updates are never mutated by the ingestion pipeline and are listed
// by received timestamp descending.
type Update struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index:idx_updates_user_received;not null" json:"user_id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Message    string    `gorm:"type:text" json:"message"`
	Source     string    `gorm:"size:100;default:'email'" json:"source"`
	Sender     string    `gorm:"size:255" json:"sender"`
	ReceivedAt time.Time `gorm:"index:idx_updates_user_received" json:"received_at"`
	CreatedAt  time.Time `json:"created_at"`
	Type       string    `gorm:"size:20;default:'email'" json:"type"`
	LinkedTask bool      `gorm:"default:false" json:"linked_task"`

	Deadline *time.Time `json:"deadline"`
	Company  string     `gorm:"size:255" json:"company"`

	// Meeting specific fields, set only for updates classified as meetings
	MeetingDate *time.Time `json:"meeting_date"`
	MeetingTime *string    `gorm:"size:5" json:"meeting_time"`
}

// ValidUpdateType checks if the type is one of the allowed values
func ValidUpdateType(t string) bool {
	switch t {
	case UpdateTypeTask, UpdateTypeMeeting, UpdateTypeEmail, UpdateTypeOther:
		return true
	}
	return false
}
