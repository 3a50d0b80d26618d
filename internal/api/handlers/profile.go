package handlers

import (
	"errors"
	"net/http"

	"github.com/AvirupSahaAug/Role-Juggler/internal/database/models"
	"github.com/AvirupSahaAug/Role-Juggler/internal/services"
	"github.com/gin-gonic/gin"
)

// ProfileHandler handles user profile requests
type ProfileHandler struct {
	userService *services.UserService
	logService  *services.LogService
}

// NewProfileHandler creates a new ProfileHandler instance
func NewProfileHandler(userService *services.UserService, logService *services.LogService) *ProfileHandler {
	return &ProfileHandler{
		userService: userService,
		logService:  logService,
	}
}

// UpdateProfileRequest represents the profile update request body. Omitted
// fields are left unchanged; MailboxPassword is stored encrypted.
type UpdateProfileRequest struct {
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	MailboxAddress  *string `json:"mailbox_address"`
	MailboxPassword *string `json:"mailbox_password"`
}

// ChangePasswordRequest represents the password change request body
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// GetProfile returns the authenticated user's profile
// GET /api/user/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}

	respondOK(c, ToProfileResponse(user))
}

// UpdateProfile updates the authenticated user's profile
// PUT /api/user/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(userID, services.ProfileUpdate{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		MailboxAddress:  req.MailboxAddress,
		MailboxPassword: req.MailboxPassword,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		} else {
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update profile")
		}
		return
	}

	h.logService.LogInfo(userID, models.LogModuleUser, "update_profile",
		"Profile updated", map[string]bool{"mailbox_changed": req.MailboxAddress != nil || req.MailboxPassword != nil})

	respondOK(c, ToProfileResponse(user))
}

// ChangePassword changes the authenticated user's login password
// PUT /api/user/password
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.userService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			respondError(c, http.StatusUnauthorized, "AUTH_FAILED", "Current password is incorrect")
		case errors.Is(err, services.ErrPasswordTooShort):
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "New password is too short")
		default:
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to change password")
		}
		return
	}

	h.logService.LogInfo(userID, models.LogModuleUser, "change_password", "Password changed", nil)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password changed successfully",
	})
}
