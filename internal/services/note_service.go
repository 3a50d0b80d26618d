package services

import (
	"errors"

	"github.com/AvirupSahaAug/Role-Juggler/internal/database/models"
	"gorm.io/gorm"
)

var (
	// ErrNoteNotFound indicates the sticky note was not found
	ErrNoteNotFound = errors.New("sticky note not found")
	// ErrInvalidNoteData indicates invalid sticky note data
	ErrInvalidNoteData = errors.New("invalid sticky note data")
)

// NoteService handles sticky note business logic
type NoteService struct {
	db *gorm.DB
}

// NewNoteService creates a new NoteService instance
func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{db: db}
}

// CreateNote creates a sticky note for a user
func (s *NoteService) CreateNote(userID uint, content, color string) (*models.StickyNote, error) {
	if content == "" {
		return nil, ErrInvalidNoteData
	}

	note := &models.StickyNote{
		UserID:  userID,
		Content: content,
		Color:   color,
	}
	if note.Color == "" {
		note.Color = models.DefaultStickyNoteColor
	}

	if err := s.db.Create(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

// GetNoteByIDAndUserID retrieves a sticky note by ID scoped to a user
func (s *NoteService) GetNoteByIDAndUserID(id, userID uint) (*models.StickyNote, error) {
	var note models.StickyNote
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// ListNotes returns all sticky notes for a user
func (s *NoteService) ListNotes(userID uint) ([]models.StickyNote, error) {
	var notes []models.StickyNote
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateNote updates a sticky note scoped to a user
func (s *NoteService) UpdateNote(id, userID uint, content, color *string) (*models.StickyNote, error) {
	note, err := s.GetNoteByIDAndUserID(id, userID)
	if err != nil {
		return nil, err
	}

	if content != nil {
		if *content == "" {
			return nil, ErrInvalidNoteData
		}
		note.Content = *content
	}
	if color != nil {
		note.Color = *color
	}

	if err := s.db.Save(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteNote deletes a sticky note scoped to a user
func (s *NoteService) DeleteNote(id, userID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.StickyNote{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}
