package handlers

import (
	"errors"
	"net/http"

	"github.com/AvirupSahaAug/Role-Juggler/internal/services"
	"github.com/gin-gonic/gin"
)

// NoteHandler handles sticky note related requests
type NoteHandler struct {
	noteService *services.NoteService
}

// NewNoteHandler creates a new NoteHandler instance
func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// CreateNoteRequest represents the request to create a sticky note
type CreateNoteRequest struct {
	Content string `json:"content" binding:"required"`
	Color   string `json:"color"`
}

// UpdateNoteRequest represents the request to update a sticky note
type UpdateNoteRequest struct {
	Content *string `json:"content"`
	Color   *string `json:"color"`
}

// ListNotes returns all sticky notes for the authenticated user
// GET /api/sticky-notes
func (h *NoteHandler) ListNotes(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	notes, err := h.noteService.ListNotes(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list sticky notes")
		return
	}
	respondOK(c, notes)
}

// CreateNote creates a new sticky note
// POST /api/sticky-notes
func (h *NoteHandler) CreateNote(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	note, err := h.noteService.CreateNote(userID, req.Content, req.Color)
	if err != nil {
		if errors.Is(err, services.ErrInvalidNoteData) {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid sticky note data")
		} else {
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create sticky note")
		}
		return
	}
	respondCreated(c, note)
}

// GetNote returns a single sticky note
// GET /api/sticky-notes/:id
func (h *NoteHandler) GetNote(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	note, err := h.noteService.GetNoteByIDAndUserID(id, userID)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Sticky note not found")
		} else {
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get sticky note")
		}
		return
	}
	respondOK(c, note)
}

// UpdateNote updates a sticky note
// PUT /api/sticky-notes/:id
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	note, err := h.noteService.UpdateNote(id, userID, req.Content, req.Color)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoteNotFound):
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Sticky note not found")
		case errors.Is(err, services.ErrInvalidNoteData):
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid sticky note data")
		default:
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update sticky note")
		}
		return
	}
	respondOK(c, note)
}

// DeleteNote deletes a sticky note
// DELETE /api/sticky-notes/:id
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.noteService.DeleteNote(id, userID); err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Sticky note not found")
		} else {
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete sticky note")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sticky note deleted",
	})
}
