package handlers

import (
	"errors"
	"net/http"

	"github.com/AvirupSahaAug/Role-Juggler/internal/api/middleware"
	"github.com/AvirupSahaAug/Role-Juggler/internal/database/models"
	"github.com/AvirupSahaAug/Role-Juggler/internal/services"
	"github.com/gin-gonic/gin"
)

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// AuthHandler handles authentication related requests
type AuthHandler struct {
	userService *services.UserService
	jwtManager  *middleware.JWTManager
	logService  *services.LogService
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(userService *services.UserService, jwtManager *middleware.JWTManager, logService *services.LogService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtManager:  jwtManager,
		logService:  logService,
	}
}

// Register handles new user registration
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, err := h.userService.CreateUser(req.Username, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserAlreadyExists):
			respondError(c, http.StatusConflict, "USER_EXISTS", "Username or email is already taken")
		case errors.Is(err, services.ErrPasswordTooShort):
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Password is too short")
		default:
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create user")
		}
		return
	}

	h.logService.LogInfo(user.ID, models.LogModuleAuth, "register",
		"User registered", map[string]string{"username": user.Username})

	respondCreated(c, ToProfileResponse(user))
}

// Login handles user login requests
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, err := h.userService.VerifyPassword(req.Username, req.Password)
	if err != nil {
		h.logService.LogLogin(0, req.Username, c.ClientIP(), false, err)
		respondError(c, http.StatusUnauthorized, "AUTH_FAILED", "Invalid username or password")
		return
	}

	token, expiresAt, err := h.jwtManager.GenerateToken(user.ID, user.Username)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate token")
		return
	}

	h.logService.LogLogin(user.ID, req.Username, c.ClientIP(), true, nil)

	respondOK(c, LoginResponse{Token: token, ExpiresAt: expiresAt})
}

// Logout handles user logout requests. Tokens are stateless, so logout is
// client-side; the server only records the event.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if userID, exists := middleware.GetUserIDFromContext(c); exists {
		h.logService.LogInfo(userID, models.LogModuleAuth, "logout", "User logged out", nil)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the current authenticated user info
// GET /api/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
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

// UserProfileResponse represents the user profile response. The mailbox
// password is never returned, only whether one is configured.
type UserProfileResponse struct {
	ID                uint   `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	MailboxAddress    string `json:"mailbox_address"`
	MailboxConfigured bool   `json:"mailbox_configured"`
	CreatedAt         int64  `json:"created_at"`
}

// ToProfileResponse converts a User model to UserProfileResponse
func ToProfileResponse(user *models.User) UserProfileResponse {
	return UserProfileResponse{
		ID:                user.ID,
		Username:          user.Username,
		Email:             user.Email,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		MailboxAddress:    user.MailboxAddress,
		MailboxConfigured: user.MailboxAddress != "" && user.MailboxPasswordEncrypted != "",
		CreatedAt:         user.CreatedAt.Unix(),
	}
}
