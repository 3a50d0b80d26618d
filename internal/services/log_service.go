package services

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/AvirupSahaAug/Role-Juggler/internal/database/models"
	"gorm.io/gorm"
)

// LogService handles logging operations
type LogService struct {
	db       *gorm.DB
	logLevel models.LogLevel
}

// NewLogService creates a new LogService instance
func NewLogService(db *gorm.DB) *LogService {
	return &LogService{
		db:       db,
		logLevel: models.LogLevelInfo,
	}
}

// NewLogServiceWithLevel creates a new LogService instance with specified log level
func NewLogServiceWithLevel(db *gorm.DB, level string) *LogService {
	return &LogService{
		db:       db,
		logLevel: parseLogLevel(level),
	}
}

// parseLogLevel converts a string to LogLevel
func parseLogLevel(level string) models.LogLevel {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return models.LogLevelDebug
	case "INFO":
		return models.LogLevelInfo
	case "WARN", "WARNING":
		return models.LogLevelWarn
	case "ERROR":
		return models.LogLevelError
	default:
		return models.LogLevelInfo
	}
}

// shouldLog checks if a log entry should be recorded based on log level
func (s *LogService) shouldLog(level models.LogLevel) bool {
	levelPriority := map[models.LogLevel]int{
		models.LogLevelDebug: 0,
		models.LogLevelInfo:  1,
		models.LogLevelWarn:  2,
		models.LogLevelError: 3,
	}

	return levelPriority[level] >= levelPriority[s.logLevel]
}

// LogEntry represents a log entry to be created
type LogEntry struct {
	UserID  uint
	Level   models.LogLevel
	Module  models.LogModule
	Action  string
	Message string
	Details interface{} // serialized to JSON
}

// Log creates a new log entry
func (s *LogService) Log(entry LogEntry) error {
	if !s.shouldLog(entry.Level) {
		return nil
	}

	var detailsJSON string
	if entry.Details != nil {
		bytes, err := json.Marshal(entry.Details)
		if err != nil {
			detailsJSON = "{}"
		} else {
			detailsJSON = string(bytes)
		}
	}

	log := &models.Log{
		UserID:  entry.UserID,
		Level:   string(entry.Level),
		Module:  string(entry.Module),
		Action:  entry.Action,
		Message: entry.Message,
		Details: detailsJSON,
	}

	return s.db.Create(log).Error
}

// LogDebug creates a DEBUG level log entry
func (s *LogService) LogDebug(userID uint, module models.LogModule, action, message string, details interface{}) error {
	return s.Log(LogEntry{UserID: userID, Level: models.LogLevelDebug, Module: module, Action: action, Message: message, Details: details})
}

// LogInfo creates an INFO level log entry
func (s *LogService) LogInfo(userID uint, module models.LogModule, action, message string, details interface{}) error {
	return s.Log(LogEntry{UserID: userID, Level: models.LogLevelInfo, Module: module, Action: action, Message: message, Details: details})
}

// LogWarn creates a WARN level log entry
func (s *LogService) LogWarn(userID uint, module models.LogModule, action, message string, details interface{}) error {
	return s.Log(LogEntry{UserID: userID, Level: models.LogLevelWarn, Module: module, Action: action, Message: message, Details: details})
}

// LogError creates an ERROR level log entry
func (s *LogService) LogError(userID uint, module models.LogModule, action, message string, details interface{}) error {
	return s.Log(LogEntry{UserID: userID, Level: models.LogLevelError, Module: module, Action: action, Message: message, Details: details})
}

// LogLogin records a login attempt
func (s *LogService) LogLogin(userID uint, username, clientIP string, success bool, loginErr error) error {
	details := map[string]interface{}{
		"username":  username,
		"client_ip": clientIP,
		"success":   success,
	}
	if loginErr != nil {
		details["error"] = loginErr.Error()
	}

	if success {
		return s.LogInfo(userID, models.LogModuleAuth, "login", "User logged in", details)
	}
	return s.LogWarn(userID, models.LogModuleAuth, "login", "Login failed", details)
}

// LogListOptions controls log listing
type LogListOptions struct {
	Level  string
	Module string
	Limit  int
	Since  time.Time
}

// GetLogs returns log entries for a user, newest first
func (s *LogService) GetLogs(userID uint, opts LogListOptions) ([]models.Log, error) {
	query := s.db.Where("user_id = ?", userID)
	if opts.Level != "" {
		query = query.Where("level = ?", strings.ToUpper(opts.Level))
	}
	if opts.Module != "" {
		query = query.Where("module = ?", opts.Module)
	}
	if !opts.Since.IsZero() {
		query = query.Where("created_at >= ?", opts.Since)
	}

	limit := opts.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var logs []models.Log
	if err := query.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
