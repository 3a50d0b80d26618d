package services

import (
	"errors"

	"github.com/AvirupSahaAug/Role-Juggler/internal/database/models"
	"gorm.io/gorm"
)

// ErrUpdateNotFound indicates the update was not found
var ErrUpdateNotFound = errors.New("update not found")

// UpdateService handles persisted update records
type UpdateService struct {
	db *gorm.DB
}

// NewUpdateService creates a new UpdateService instance
func NewUpdateService(db *gorm.DB) *UpdateService {
	return &UpdateService{db: db}
}

// ListUpdates returns a user's updates, most recently received first
func (s *UpdateService) ListUpdates(userID uint) ([]models.Update, error) {
	var updates []models.Update
	err := s.db.Where("user_id = ?", userID).
		Order("received_at DESC").
		Find(&updates).Error
	if err != nil {
		return nil, err
	}
	return updates, nil
}

// GetUpdateByIDAndUserID retrieves an update by ID scoped to a user
func (s *UpdateService) GetUpdateByIDAndUserID(id, userID uint) (*models.Update, error) {
	var update models.Update
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&update).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUpdateNotFound
		}
		return nil, err
	}
	return &update, nil
}

// DeleteUpdate deletes an update scoped to a user
func (s *UpdateService) DeleteUpdate(id, userID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Update{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUpdateNotFound
	}
	return nil
}
