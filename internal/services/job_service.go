package services

import (
	"errors"
	"fmt"

	"github.com/AvirupSahaAug/Role-Juggler/internal/database/models"
	"gorm.io/gorm"
)

var (
	// ErrJobNotFound indicates the job was not found
	ErrJobNotFound = errors.New("job not found")
	// ErrInvalidJobData indicates invalid job data
	ErrInvalidJobData = errors.New("invalid job data")
)

// JobService handles job-related business logic
type JobService struct {
	db *gorm.DB
}

// NewJobService creates a new JobService instance
func NewJobService(db *gorm.DB) *JobService {
	return &JobService{db: db}
}

// CreateJobInput represents the input for creating a job
type CreateJobInput struct {
	UserID  uint
	Name    string
	Company string
	Color   string
}

// CreateJob creates a new job for a user
func (s *JobService) CreateJob(input CreateJobInput) (*models.Job, error) {
	if input.Name == "" || input.Company == "" {
		return nil, ErrInvalidJobData
	}

	job := &models.Job{
		UserID:  input.UserID,
		Name:    input.Name,
		Company: input.Company,
		Color:   input.Color,
	}
	if job.Color == "" {
		job.Color = models.DefaultJobColor
	}

	if err := s.db.Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// GetOrCreateByCompany looks up the job for a (user, company) pair, creating
// it with the default name and color on first sight. The lookup-or-create is
// atomic with respect to that key when run inside a transaction.
func (s *JobService) GetOrCreateByCompany(tx *gorm.DB, userID uint, company string) (*models.Job, error) {
	if tx == nil {
		tx = s.db
	}

	var job models.Job
	err := tx.Where(models.Job{UserID: userID, Company: company}).
		Attrs(models.Job{
			Name:  fmt.Sprintf("%s Work", company),
			Color: models.DefaultJobColor,
		}).
		FirstOrCreate(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// GetJobByIDAndUserID retrieves a job by ID scoped to a user
func (s *JobService) GetJobByIDAndUserID(id, userID uint) (*models.Job, error) {
	var job models.Job
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

// ListJobs returns all jobs for a user
func (s *JobService) ListJobs(userID uint) ([]models.Job, error) {
	var jobs []models.Job
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// UpdateJobInput represents the mutable job fields
type UpdateJobInput struct {
	Name    *string
	Company *string
	Color   *string
}

// UpdateJob updates a job scoped to a user
func (s *JobService) UpdateJob(id, userID uint, input UpdateJobInput) (*models.Job, error) {
	job, err := s.GetJobByIDAndUserID(id, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		job.Name = *input.Name
	}
	if input.Company != nil {
		job.Company = *input.Company
	}
	if input.Color != nil {
		job.Color = *input.Color
	}

	if err := s.db.Save(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// DeleteJob deletes a job scoped to a user
func (s *JobService) DeleteJob(id, userID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Job{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}
