package models

import (
	"time"
)

// DefaultMeetingDuration is the duration, in minutes, assigned to meetings
// created from ingested emails.
const DefaultMeetingDuration = 60

// Meeting represents a calendar entry, optionally linked to a Job.
// MeetingDate carries only the calendar date (midnight UTC); MeetingTime is
// the clock time in "15:04" form.
type Meeting struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	JobID       *uint     `gorm:"index" json:"job_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Company     string    `gorm:"size:255" json:"company"`
	MeetingDate time.Time `gorm:"index;not null" json:"meeting_date"`
	MeetingTime string    `gorm:"size:5;not null" json:"meeting_time"`
	Duration    int       `gorm:"default:60" json:"duration"` // minutes
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `gorm:"size:255" json:"location"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Job *Job `gorm:"foreignKey:JobID" json:"job,omitempty"`
}
