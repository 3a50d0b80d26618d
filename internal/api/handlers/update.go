package handlers

import (
	"errors"
	"net/http"

	"github.com/AvirupSahaAug/Role-Juggler/internal/services"
	"github.com/gin-gonic/gin"
)

// UpdateHandler handles read access to ingested updates
type UpdateHandler struct {
	updateService *services.UpdateService
}

// NewUpdateHandler creates a new UpdateHandler instance
func NewUpdateHandler(updateService *services.UpdateService) *UpdateHandler {
	return &UpdateHandler{updateService: updateService}
}

// ListUpdates returns the authenticated user's updates, newest first
// GET /api/updates
func (h *UpdateHandler) ListUpdates(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	updates, err := h.updateService.ListUpdates(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list updates")
		return
	}
	respondOK(c, updates)
}

// DeleteUpdate deletes an update
// DELETE /api/updates/:id
func (h *UpdateHandler) DeleteUpdate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.updateService.DeleteUpdate(id, userID); err != nil {
		if errors.Is(err, services.ErrUpdateNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Update not found")
		} else {
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete update")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Update deleted",
	})
}
