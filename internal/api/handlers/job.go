package handlers

import (
	"errors"
	"net/http"

	"github.com/AvirupSahaAug/Role-Juggler/internal/services"
	"github.com/gin-gonic/gin"
)

// JobHandler handles job related requests
type JobHandler struct {
	jobService *services.JobService
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(jobService *services.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// CreateJobRequest represents the request to create a job
type CreateJobRequest struct {
	Name    string `json:"name" binding:"required"`
	Company string `json:"company" binding:"required"`
	Color   string `json:"color"`
}

// UpdateJobRequest represents the request to update a job
type UpdateJobRequest struct {
	Name    *string `json:"name"`
	Company *string `json:"company"`
	Color   *string `json:"color"`
}

// ListJobs returns all jobs for the authenticated user
// GET /api/jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListJobs(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list jobs")
		return
	}
	respondOK(c, jobs)
}

// CreateJob creates a new job
// POST /api/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	job, err := h.jobService.CreateJob(services.CreateJobInput{
		UserID:  userID,
		Name:    req.Name,
		Company: req.Company,
		Color:   req.Color,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidJobData) {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid job data")
		} else {
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create job")
		}
		return
	}
	respondCreated(c, job)
}

// GetJob returns a single job
// GET /api/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	job, err := h.jobService.GetJobByIDAndUserID(id, userID)
	if err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Job not found")
		} else {
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get job")
		}
		return
	}
	respondOK(c, job)
}

// UpdateJob updates a job
// PUT /api/jobs/:id
func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	job, err := h.jobService.UpdateJob(id, userID, services.UpdateJobInput{
		Name:    req.Name,
		Company: req.Company,
		Color:   req.Color,
	})
	if err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Job not found")
		} else {
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update job")
		}
		return
	}
	respondOK(c, job)
}

// DeleteJob deletes a job
// DELETE /api/jobs/:id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(id, userID); err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Job not found")
		} else {
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete job")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job deleted",
	})
}
