package handlers

import (
	"errors"
	"net/http"

	"github.com/AvirupSahaAug/Role-Juggler/internal/services"
	"github.com/gin-gonic/gin"
)

// IngestHandler triggers mailbox ingestion runs
type IngestHandler struct {
	ingestionService *services.IngestionService
}

// NewIngestHandler creates a new IngestHandler instance
func NewIngestHandler(ingestionService *services.IngestionService) *IngestHandler {
	return &IngestHandler{ingestionService: ingestionService}
}

// FetchToday runs the ingestion pipeline over today's mail and returns the
// updates it created. Missing configuration and bad mailbox credentials are
// client errors; everything past authentication is a server error.
// POST /api/emails/fetch-today
func (h *IngestHandler) FetchToday(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	updates, err := h.ingestionService.FetchTodayUpdates(userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCredentialsNotConfigured):
			respondError(c, http.StatusBadRequest, "CONFIG_MISSING", "Mailbox address and password are not configured")
		case errors.Is(err, services.ErrMailboxAuthFailed):
			respondError(c, http.StatusBadRequest, "AUTH_FAILED", "Mailbox rejected the configured credentials")
		case errors.Is(err, services.ErrMailboxSearchFailed):
			respondError(c, http.StatusInternalServerError, "MAILBOX_ERROR", "Mailbox search failed")
		default:
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch updates")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"created": len(updates),
			"updates": updates,
		},
	})
}
