package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/AvirupSahaAug/Role-Juggler/internal/api"
	"github.com/AvirupSahaAug/Role-Juggler/internal/cli"
	"github.com/AvirupSahaAug/Role-Juggler/internal/config"
	"github.com/AvirupSahaAug/Role-Juggler/internal/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := ensureDataDir(cfg); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// With arguments the binary acts as the admin CLI
	if len(os.Args) > 1 {
		cli.Execute(db, cfg)
		return
	}

	router, authManager, err := api.SetupRouter(db, cfg)
	if err != nil {
		log.Fatalf("Failed to setup router: %v", err)
	}

	log.Printf("Starting Role Juggler server on port %s", cfg.APIPort)
	log.Printf("Data directory: %s", cfg.DataDir)
	log.Printf("Database path: %s", cfg.DatabasePath)
	log.Printf("IMAP server: %s:%d", cfg.IMAPHost, cfg.IMAPPort)
	log.Printf("API Key: %s", authManager.APIKeyManager.GetCurrentKey())
	if err := router.Run(":" + cfg.APIPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// ensureDataDir creates the data directory and the database parent directory
func ensureDataDir(cfg *config.Config) error {
	dirs := []string{
		cfg.DataDir,
		filepath.Dir(cfg.DatabasePath),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
