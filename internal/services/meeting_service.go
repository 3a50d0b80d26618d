package services

import (
	"errors"
	"time"

	"github.com/AvirupSahaAug/Role-Juggler/internal/database/models"
	"gorm.io/gorm"
)

var (
	// ErrMeetingNotFound indicates the meeting was not found
	ErrMeetingNotFound = errors.New("meeting not found")
	// ErrInvalidMeetingData indicates invalid meeting data
	ErrInvalidMeetingData = errors.New("invalid meeting data")
)

// duplicateWindow is the span around a meeting date within which a
// meeting with the same title counts as a duplicate.
const duplicateWindow = 7 * 24 * time.Hour

// MeetingService handles meeting business logic
type MeetingService struct {
	db *gorm.DB
}

// NewMeetingService creates a new MeetingService instance
func NewMeetingService(db *gorm.DB) *MeetingService {
	return &MeetingService{db: db}
}

// CreateMeetingInput collects the fields accepted when creating a meeting
type CreateMeetingInput struct {
	Title       string
	Description string
	MeetingDate time.Time
	MeetingTime string
	Duration    int
	Location    string
}

// CreateMeeting creates a meeting for a user
func (s *MeetingService) CreateMeeting(userID uint, input CreateMeetingInput) (*models.Meeting, error) {
	if input.Title == "" || input.MeetingDate.IsZero() {
		return nil, ErrInvalidMeetingData
	}
	if input.MeetingTime == "" {
		return nil, ErrInvalidMeetingData
	}
	if _, err := time.Parse("15:04", input.MeetingTime); err != nil {
		return nil, ErrInvalidMeetingData
	}

	meeting := &models.Meeting{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		MeetingDate: input.MeetingDate,
		MeetingTime: input.MeetingTime,
		Duration:    input.Duration,
		Location:    input.Location,
	}
	if meeting.Duration <= 0 {
		meeting.Duration = models.DefaultMeetingDuration
	}

	if err := s.db.Create(meeting).Error; err != nil {
		return nil, err
	}
	return meeting, nil
}

// GetMeetingByIDAndUserID retrieves a meeting by ID scoped to a user
func (s *MeetingService) GetMeetingByIDAndUserID(id, userID uint) (*models.Meeting, error) {
	var meeting models.Meeting
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, err
	}
	return &meeting, nil
}

// ListMeetings returns a user's meetings from today onward, earliest first
func (s *MeetingService) ListMeetings(userID uint) ([]models.Meeting, error) {
	today := time.Now().Truncate(24 * time.Hour)
	var meetings []models.Meeting
	err := s.db.Where("user_id = ? AND meeting_date >= ?", userID, today).
		Order("meeting_date ASC, meeting_time ASC").
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}

// UpdateMeetingInput collects the updatable meeting fields. Nil fields
// are left unchanged.
type UpdateMeetingInput struct {
	Title       *string
	Description *string
	MeetingDate *time.Time
	MeetingTime *string
	Duration    *int
	Location    *string
}

// UpdateMeeting updates a meeting scoped to a user
func (s *MeetingService) UpdateMeeting(id, userID uint, input UpdateMeetingInput) (*models.Meeting, error) {
	meeting, err := s.GetMeetingByIDAndUserID(id, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrInvalidMeetingData
		}
		meeting.Title = *input.Title
	}
	if input.Description != nil {
		meeting.Description = *input.Description
	}
	if input.MeetingDate != nil {
		meeting.MeetingDate = *input.MeetingDate
	}
	if input.MeetingTime != nil {
		if _, err := time.Parse("15:04", *input.MeetingTime); err != nil {
			return nil, ErrInvalidMeetingData
		}
		meeting.MeetingTime = *input.MeetingTime
	}
	if input.Duration != nil {
		if *input.Duration <= 0 {
			return nil, ErrInvalidMeetingData
		}
		meeting.Duration = *input.Duration
	}
	if input.Location != nil {
		meeting.Location = *input.Location
	}

	if err := s.db.Save(meeting).Error; err != nil {
		return nil, err
	}
	return meeting, nil
}

// DeleteMeeting deletes a meeting scoped to a user
func (s *MeetingService) DeleteMeeting(id, userID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Meeting{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMeetingNotFound
	}
	return nil
}

// FindDuplicate looks for an existing meeting with the same title whose
// date falls within a week of the given date. Used to avoid creating
// duplicate meetings from repeated emails about the same event.
func FindDuplicate(tx *gorm.DB, userID uint, title string, date time.Time) (*models.Meeting, error) {
	var meeting models.Meeting
	err := tx.Where("user_id = ? AND title = ? AND meeting_date BETWEEN ? AND ?",
		userID, title, date.Add(-duplicateWindow), date.Add(duplicateWindow)).
		First(&meeting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}
