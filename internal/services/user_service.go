package services

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"

	"github.com/AvirupSahaAug/Role-Juggler/internal/database/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrUserNotFound indicates the user was not found
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists indicates the username or email is already taken
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials indicates invalid login credentials
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPasswordTooShort indicates the password is too short
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	// ErrEncryptionFailed indicates mailbox password encryption failed
	ErrEncryptionFailed = errors.New("password encryption failed")
	// ErrDecryptionFailed indicates mailbox password decryption failed
	ErrDecryptionFailed = errors.New("password decryption failed")
)

// UserService handles user-related business logic, including storage of the
// encrypted mailbox credential used by the ingestion pipeline
type UserService struct {
	db            *gorm.DB
	encryptionKey []byte // 32 bytes for AES-256
	logService    *LogService
}

// NewUserService creates a new UserService instance
func NewUserService(db *gorm.DB, encryptionKey []byte) *UserService {
	key := make([]byte, 32)
	copy(key, encryptionKey)
	return &UserService{
		db:            db,
		encryptionKey: key,
		logService:    NewLogService(db),
	}
}

// CreateUser creates a new user with a bcrypt-hashed password
func (s *UserService) CreateUser(username, email, password, firstName, lastName string) (*models.User, error) {
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}

	var existing models.User
	if err := s.db.Where("username = ? OR email = ?", username, email).First(&existing).Error; err == nil {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	newUser := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		FirstName:    firstName,
		LastName:     lastName,
	}

	if err := s.db.Create(newUser).Error; err != nil {
		return nil, err
	}

	s.logService.LogInfo(newUser.ID, models.LogModuleUser, "create", "User created", map[string]interface{}{
		"username": username,
	})

	return newUser, nil
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var foundUser models.User
	if err := s.db.First(&foundUser, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &foundUser, nil
}

// GetUserByUsername retrieves a user by username
func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	var foundUser models.User
	if err := s.db.Where("username = ?", username).First(&foundUser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &foundUser, nil
}

// ListUsers returns all users
func (s *UserService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// VerifyPassword checks a username/password pair and returns the user
func (s *UserService) VerifyPassword(username, password string) (*models.User, error) {
	foundUser, err := s.GetUserByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return foundUser, nil
}

// ChangePassword updates a user's password after verifying the old one
func (s *UserService) ChangePassword(id uint, oldPassword, newPassword string) error {
	foundUser, err := s.GetUserByID(id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	return s.ResetPassword(id, newPassword)
}

// ResetPassword sets a user's password without verifying the old one
// (admin/CLI use)
func (s *UserService) ResetPassword(id uint, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.db.Model(&models.User{}).Where("id = ?", id).Update("password_hash", string(hashedPassword)).Error
}

// ProfileUpdate carries the mutable profile fields. Nil pointers leave the
// corresponding field untouched.
type ProfileUpdate struct {
	FirstName       *string
	LastName        *string
	MailboxAddress  *string
	MailboxPassword *string
}

// UpdateProfile updates profile fields and the mailbox credential. The
// mailbox password is encrypted before storage.
func (s *UserService) UpdateProfile(id uint, update ProfileUpdate) (*models.User, error) {
	foundUser, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if update.FirstName != nil {
		foundUser.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		foundUser.LastName = *update.LastName
	}
	if update.MailboxAddress != nil {
		foundUser.MailboxAddress = *update.MailboxAddress
	}
	if update.MailboxPassword != nil && *update.MailboxPassword != "" {
		encrypted, err := s.encrypt(*update.MailboxPassword)
		if err != nil {
			return nil, err
		}
		foundUser.MailboxPasswordEncrypted = encrypted
	}

	if err := s.db.Save(foundUser).Error; err != nil {
		return nil, err
	}

	return foundUser, nil
}

// GetMailboxPassword returns the decrypted mailbox password for a user.
// An empty string means no credential is configured.
func (s *UserService) GetMailboxPassword(user *models.User) (string, error) {
	if user.MailboxPasswordEncrypted == "" {
		return "", nil
	}
	return s.decrypt(user.MailboxPasswordEncrypted)
}

// encrypt encrypts a secret using AES-256-GCM
func (s *UserService) encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return "", ErrEncryptionFailed
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", ErrEncryptionFailed
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", ErrEncryptionFailed
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a secret using AES-256-GCM
func (s *UserService) decrypt(encrypted string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", ErrDecryptionFailed
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	return string(plaintext), nil
}
