package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/AvirupSahaAug/Role-Juggler/internal/services"
	"github.com/gin-gonic/gin"
)

// TaskHandler handles task related requests
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler instance
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	JobID       *uint      `json:"job_id"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Deadline    *time.Time `json:"deadline"`
}

// UpdateTaskRequest represents the request to update a task
type UpdateTaskRequest struct {
	JobID        *uint      `json:"job_id"`
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status"`
	Priority     *string    `json:"priority"`
	Deadline     *time.Time `json:"deadline"`
	TimeSpentMS  *int64     `json:"time_spent_ms"`
	LastWorkedOn *time.Time `json:"last_worked_on"`
}

// ListTasks returns all tasks for the authenticated user
// GET /api/tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list tasks")
		return
	}
	respondOK(c, tasks)
}

// CreateTask creates a new task
// POST /api/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		UserID:      userID,
		JobID:       req.JobID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidTaskData) {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid task data")
		} else {
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create task")
		}
		return
	}
	respondCreated(c, task)
}

// GetTask returns a single task
// GET /api/tasks/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTaskByIDAndUserID(id, userID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Task not found")
		} else {
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get task")
		}
		return
	}
	respondOK(c, task)
}

// UpdateTask updates a task
// PUT /api/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	task, err := h.taskService.UpdateTask(id, userID, services.UpdateTaskInput{
		JobID:        req.JobID,
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		Deadline:     req.Deadline,
		TimeSpentMS:  req.TimeSpentMS,
		LastWorkedOn: req.LastWorkedOn,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Task not found")
		case errors.Is(err, services.ErrInvalidTaskData):
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid task data")
		default:
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update task")
		}
		return
	}
	respondOK(c, task)
}

// DeleteTask deletes a task
// DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(id, userID); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Task not found")
		} else {
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete task")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task deleted",
	})
}
