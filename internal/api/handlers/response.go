// Package handlers implements the HTTP API. All responses share one
// envelope: {"success": true, "data": ...} on success and
// {"success": false, "error": {"code", "message"}} on failure.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/AvirupSahaAug/Role-Juggler/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

func parseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request body",
			"details": err.Error(),
		},
	})
}

// requireUserID resolves the authenticated user or writes a 401
func requireUserID(c *gin.Context) (uint, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		respondError(c, http.StatusUnauthorized, "AUTH_FAILED", "User not authenticated")
		return 0, false
	}
	return userID, true
}

// parseIDParam parses the :id path parameter or writes a 400
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}
