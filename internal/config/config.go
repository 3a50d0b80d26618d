package config

import (
	"crypto/sha256"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	DatabasePath  string `json:"database_path"`
	APIPort       string `json:"api_port"`
	LogLevel      string `json:"log_level"`
	DataDir       string `json:"data_dir"`
	JWTSecret     string `json:"jwt_secret"`
	EncryptionKey string `json:"encryption_key"` // encrypts stored mailbox passwords
	CORSOrigins   string `json:"cors_origins"`   // comma separated, * for all

	// Mailbox server the ingestion pipeline connects to
	IMAPHost string `json:"imap_host"`
	IMAPPort int    `json:"imap_port"`

	// Classification service (OpenAI-compatible chat completions)
	AIProvider string `json:"ai_provider"`
	AIAPIKey   string `json:"ai_api_key"`
	AIModel    string `json:"ai_model"`
	AIBaseURL  string `json:"ai_base_url"`
}

// Default configuration values
const (
	DefaultDatabasePath = "data/role_juggler.db"
	DefaultAPIPort      = "8080"
	DefaultLogLevel     = "INFO"
	DefaultDataDir      = "data"
	DefaultJWTSecret    = "role-juggler-default-secret-change-in-production"
	DefaultCORSOrigins  = "*"
	DefaultIMAPHost     = "imap.gmail.com"
	DefaultIMAPPort     = 993
	DefaultAIProvider   = "openai"
)

// Load loads configuration from environment variables and config file
// Priority: Environment variables > Config file > Default values
func Load() (*Config, error) {
	// A local .env is optional; missing files are not an error
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath: DefaultDatabasePath,
		APIPort:      DefaultAPIPort,
		LogLevel:     DefaultLogLevel,
		DataDir:      DefaultDataDir,
		JWTSecret:    DefaultJWTSecret,
		CORSOrigins:  DefaultCORSOrigins,
		IMAPHost:     DefaultIMAPHost,
		IMAPPort:     DefaultIMAPPort,
		AIProvider:   DefaultAIProvider,
	}

	// Config file is optional
	_ = cfg.loadFromFile()

	cfg.loadFromEnv()

	return cfg, nil
}

// loadFromFile loads configuration from config.json
func (c *Config) loadFromFile() error {
	configPaths := []string{
		"config.json",
		filepath.Join(c.DataDir, "config.json"),
	}

	for _, path := range configPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return json.Unmarshal(data, c)
	}

	return nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if val := os.Getenv("ROLE_JUGGLER_DATABASE_PATH"); val != "" {
		c.DatabasePath = val
	}
	if val := os.Getenv("ROLE_JUGGLER_API_PORT"); val != "" {
		c.APIPort = val
	}
	if val := os.Getenv("ROLE_JUGGLER_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}
	if val := os.Getenv("ROLE_JUGGLER_DATA_DIR"); val != "" {
		c.DataDir = val
	}
	if val := os.Getenv("ROLE_JUGGLER_JWT_SECRET"); val != "" {
		c.JWTSecret = val
	}
	if val := os.Getenv("ROLE_JUGGLER_ENCRYPTION_KEY"); val != "" {
		c.EncryptionKey = val
	}
	if val := os.Getenv("ROLE_JUGGLER_CORS_ORIGINS"); val != "" {
		c.CORSOrigins = val
	}
	if val := os.Getenv("ROLE_JUGGLER_IMAP_HOST"); val != "" {
		c.IMAPHost = val
	}
	if val := os.Getenv("ROLE_JUGGLER_IMAP_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.IMAPPort = port
		}
	}
	if val := os.Getenv("ROLE_JUGGLER_AI_PROVIDER"); val != "" {
		c.AIProvider = val
	}
	if val := os.Getenv("ROLE_JUGGLER_AI_API_KEY"); val != "" {
		c.AIAPIKey = val
	}
	if val := os.Getenv("ROLE_JUGGLER_AI_MODEL"); val != "" {
		c.AIModel = val
	}
	if val := os.Getenv("ROLE_JUGGLER_AI_BASE_URL"); val != "" {
		c.AIBaseURL = val
	}
}

// GetEncryptionKey returns the 32-byte key for mailbox password encryption.
// If EncryptionKey is unset, the key is derived from JWTSecret.
func (c *Config) GetEncryptionKey() []byte {
	if c.EncryptionKey != "" {
		hash := sha256.Sum256([]byte(c.EncryptionKey))
		return hash[:]
	}
	hash := sha256.Sum256([]byte(c.JWTSecret + "-encryption"))
	return hash[:]
}

// Save saves the current configuration to a file
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
