package models

import (
	"time"
)

// User represents a user in the system
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	FirstName    string    `gorm:"size:150" json:"first_name"`
	LastName     string    `gorm:"size:150" json:"last_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Mailbox integration: the IMAP address and app password used by the
	// ingestion pipeline. The password is stored AES-GCM encrypted.
	MailboxAddress           string `gorm:"size:255" json:"mailbox_address"`
	MailboxPasswordEncrypted string `gorm:"size:500" json:"-"`

	// Relations
	Jobs        []Job        `gorm:"foreignKey:UserID" json:"jobs,omitempty"`
	Tasks       []Task       `gorm:"foreignKey:UserID" json:"tasks,omitempty"`
	Meetings    []Meeting    `gorm:"foreignKey:UserID" json:"meetings,omitempty"`
	StickyNotes []StickyNote `gorm:"foreignKey:UserID" json:"sticky_notes,omitempty"`
	Updates     []Update     `gorm:"foreignKey:UserID" json:"updates,omitempty"`
}
