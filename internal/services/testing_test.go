package services

import (
	"os"
	"testing"

	"github.com/AvirupSahaAug/Role-Juggler/internal/database/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEncryptionKey is a fixed 32-byte AES key for tests
var testEncryptionKey = []byte("0123456789abcdef0123456789abcdef")

func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	tmpFile, err := os.CreateTemp("", "test_*.db")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	tmpFile.Close()

	db, err := gorm.Open(sqlite.Open(tmpFile.Name()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("Failed to open database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.Task{},
		&models.WorkSession{},
		&models.StickyNote{},
		&models.Meeting{},
		&models.Update{},
		&models.Log{},
	)
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("Failed to migrate: %v", err)
	}

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		os.Remove(tmpFile.Name())
	}

	return db, cleanup
}

func createTestUser(t *testing.T, service *UserService, username string) *models.User {
	user, err := service.CreateUser(username, username+"@example.com", "password123", "Test", "User")
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}
