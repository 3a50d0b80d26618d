package models

import (
	"time"
)

// Task status values
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in-progress"
	TaskStatusDone       = "done"
)

// Task priority values
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// Task represents a unit of work, optionally attached to a Job
type Task struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"index;not null" json:"user_id"`
	JobID          *uint      `gorm:"index" json:"job_id"`
	Title          string     `gorm:"size:200;not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	Status         string     `gorm:"size:20;default:'todo'" json:"status"`
	Priority       string     `gorm:"size:20;default:'medium'" json:"priority"`
	Deadline       *time.Time `json:"deadline"`
	TotalTimeSpent int64      `gorm:"default:0" json:"total_time_spent"` // milliseconds
	LastWorkedOn   *time.Time `json:"last_worked_on"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	Job          *Job          `gorm:"foreignKey:JobID" json:"job,omitempty"`
	WorkSessions []WorkSession `gorm:"foreignKey:TaskID" json:"work_sessions,omitempty"`
}

// ValidTaskStatus checks if the status is one of the allowed values
func ValidTaskStatus(status string) bool {
	switch status {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// ValidTaskPriority checks if the priority is one of the allowed values
func ValidTaskPriority(priority string) bool {
	switch priority {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// WorkSession records time spent working on a task
type WorkSession struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	TaskID    uint       `gorm:"index;not null" json:"task_id"`
	StartTime time.Time  `gorm:"not null" json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Duration  int64      `gorm:"default:0" json:"duration"` // milliseconds
	Notes     string     `gorm:"type:text" json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
}
