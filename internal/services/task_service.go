package services

import (
	"errors"
	"time"

	"github.com/AvirupSahaAug/Role-Juggler/internal/database/models"
	"gorm.io/gorm"
)

var (
	// ErrTaskNotFound indicates the task was not found
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidTaskData indicates invalid task data
	ErrInvalidTaskData = errors.New("invalid task data")
)

// TaskService handles task-related business logic
type TaskService struct {
	db *gorm.DB
}

// NewTaskService creates a new TaskService instance
func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// CreateTaskInput represents the input for creating a task
type CreateTaskInput struct {
	UserID      uint
	JobID       *uint
	Title       string
	Description string
	Status      string
	Priority    string
	Deadline    *time.Time
}

// CreateTask creates a new task for a user
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrInvalidTaskData
	}
	if input.Status != "" && !models.ValidTaskStatus(input.Status) {
		return nil, ErrInvalidTaskData
	}
	if input.Priority != "" && !models.ValidTaskPriority(input.Priority) {
		return nil, ErrInvalidTaskData
	}

	task := &models.Task{
		UserID:      input.UserID,
		JobID:       input.JobID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		Deadline:    input.Deadline,
	}
	if task.Status == "" {
		task.Status = models.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}

	if err := s.db.Create(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// GetTaskByIDAndUserID retrieves a task by ID scoped to a user
func (s *TaskService) GetTaskByIDAndUserID(id, userID uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.Preload("Job").Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// ListTasks returns all tasks for a user
func (s *TaskService) ListTasks(userID uint) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.db.Preload("Job").Where("user_id = ?", userID).Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTaskInput represents the mutable task fields
type UpdateTaskInput struct {
	JobID        *uint
	Title        *string
	Description  *string
	Status       *string
	Priority     *string
	Deadline     *time.Time
	TimeSpentMS  *int64
	LastWorkedOn *time.Time
}

// UpdateTask updates a task scoped to a user
func (s *TaskService) UpdateTask(id, userID uint, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTaskByIDAndUserID(id, userID)
	if err != nil {
		return nil, err
	}

	if input.JobID != nil {
		task.JobID = input.JobID
	}
	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !models.ValidTaskStatus(*input.Status) {
			return nil, ErrInvalidTaskData
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if !models.ValidTaskPriority(*input.Priority) {
			return nil, ErrInvalidTaskData
		}
		task.Priority = *input.Priority
	}
	if input.Deadline != nil {
		task.Deadline = input.Deadline
	}
	if input.TimeSpentMS != nil {
		task.TotalTimeSpent = *input.TimeSpentMS
	}
	if input.LastWorkedOn != nil {
		task.LastWorkedOn = input.LastWorkedOn
	}

	if err := s.db.Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask deletes a task scoped to a user
func (s *TaskService) DeleteTask(id, userID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
