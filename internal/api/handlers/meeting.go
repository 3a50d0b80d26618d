package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/AvirupSahaAug/Role-Juggler/internal/services"
	"github.com/gin-gonic/gin"
)

// meetingDateFormat is the wire format for meeting dates
const meetingDateFormat = "2006-01-02"

// MeetingHandler handles meeting related requests
type MeetingHandler struct {
	meetingService *services.MeetingService
}

// NewMeetingHandler creates a new MeetingHandler instance
func NewMeetingHandler(meetingService *services.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetingService: meetingService}
}

// CreateMeetingRequest represents the request to create a meeting.
// MeetingDate is a calendar date "2006-01-02"; MeetingTime is "15:04".
type CreateMeetingRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	MeetingDate string `json:"meeting_date" binding:"required"`
	MeetingTime string `json:"meeting_time" binding:"required"`
	Duration    int    `json:"duration"`
	Location    string `json:"location"`
}

// UpdateMeetingRequest represents the request to update a meeting
type UpdateMeetingRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	MeetingDate *string `json:"meeting_date"`
	MeetingTime *string `json:"meeting_time"`
	Duration    *int    `json:"duration"`
	Location    *string `json:"location"`
}

// ListMeetings returns the authenticated user's upcoming meetings
// GET /api/meetings
func (h *MeetingHandler) ListMeetings(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	meetings, err := h.meetingService.ListMeetings(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list meetings")
		return
	}
	respondOK(c, meetings)
}

// CreateMeeting creates a new meeting
// POST /api/meetings
func (h *MeetingHandler) CreateMeeting(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	date, err := time.Parse(meetingDateFormat, req.MeetingDate)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid meeting date, expected YYYY-MM-DD")
		return
	}

	meeting, err := h.meetingService.CreateMeeting(userID, services.CreateMeetingInput{
		Title:       req.Title,
		Description: req.Description,
		MeetingDate: date,
		MeetingTime: req.MeetingTime,
		Duration:    req.Duration,
		Location:    req.Location,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidMeetingData) {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid meeting data")
		} else {
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create meeting")
		}
		return
	}
	respondCreated(c, meeting)
}

// GetMeeting returns a single meeting
// GET /api/meetings/:id
func (h *MeetingHandler) GetMeeting(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	meeting, err := h.meetingService.GetMeetingByIDAndUserID(id, userID)
	if err != nil {
		if errors.Is(err, services.ErrMeetingNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Meeting not found")
		} else {
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get meeting")
		}
		return
	}
	respondOK(c, meeting)
}

// UpdateMeeting updates a meeting
// PUT /api/meetings/:id
func (h *MeetingHandler) UpdateMeeting(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	input := services.UpdateMeetingInput{
		Title:       req.Title,
		Description: req.Description,
		MeetingTime: req.MeetingTime,
		Duration:    req.Duration,
		Location:    req.Location,
	}
	if req.MeetingDate != nil {
		date, err := time.Parse(meetingDateFormat, *req.MeetingDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid meeting date, expected YYYY-MM-DD")
			return
		}
		input.MeetingDate = &date
	}

	meeting, err := h.meetingService.UpdateMeeting(id, userID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMeetingNotFound):
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Meeting not found")
		case errors.Is(err, services.ErrInvalidMeetingData):
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid meeting data")
		default:
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update meeting")
		}
		return
	}
	respondOK(c, meeting)
}

// DeleteMeeting deletes a meeting
// DELETE /api/meetings/:id
func (h *MeetingHandler) DeleteMeeting(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.meetingService.DeleteMeeting(id, userID); err != nil {
		if errors.Is(err, services.ErrMeetingNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Meeting not found")
		} else {
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete meeting")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Meeting deleted",
	})
}
