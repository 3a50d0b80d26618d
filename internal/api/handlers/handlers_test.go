package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AvirupSahaAug/Role-Juggler/internal/api/middleware"
	"github.com/AvirupSahaAug/Role-Juggler/internal/database/models"
	"github.com/AvirupSahaAug/Role-Juggler/internal/functions"
	"github.com/AvirupSahaAug/Role-Juggler/internal/mailbox"
	"github.com/AvirupSahaAug/Role-Juggler/internal/services"
)

var handlerTestKey = []byte("0123456789abcdef0123456789abcdef")

type testEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	userService *services.UserService
	jwtManager  *middleware.JWTManager
}

// failingDialer always refuses the login
type failingDialer struct{}

func (failingDialer) Dial(creds mailbox.Credentials) (mailbox.Session, error) {
	return nil, mailbox.ErrAuthFailed
}

// fixedClassifier is never reached in these tests but satisfies the interface
type fixedClassifier struct{}

func (fixedClassifier) Classify(subject, sender string) functions.Classification {
	return functions.Fallback(subject, sender, time.Now())
}

func setupEnv(t *testing.T) (*testEnv, func()) {
	gin.SetMode(gin.TestMode)

	tmpFile, err := os.CreateTemp("", "handlers_test_*.db")
	require.NoError(t, err)
	tmpFile.Close()

	db, err := gorm.Open(sqlite.Open(tmpFile.Name()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.Task{},
		&models.WorkSession{},
		&models.StickyNote{},
		&models.Meeting{},
		&models.Update{},
		&models.Log{},
	))

	logService := services.NewLogService(db)
	userService := services.NewUserService(db, handlerTestKey)
	jwtManager := middleware.NewJWTManager("handlers-test-secret", time.Hour)

	ingestionService := services.NewIngestionService(
		db, userService, services.NewJobService(db),
		failingDialer{}, fixedClassifier{}, logService,
	)

	authHandler := NewAuthHandler(userService, jwtManager, logService)
	profileHandler := NewProfileHandler(userService, logService)
	updateHandler := NewUpdateHandler(services.NewUpdateService(db))
	ingestHandler := NewIngestHandler(ingestionService)

	router := gin.New()
	api := router.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.JWTMiddleware(jwtManager))
	protected.GET("/auth/me", authHandler.GetCurrentUser)
	protected.PUT("/user/profile", profileHandler.UpdateProfile)
	protected.GET("/updates", updateHandler.ListUpdates)
	protected.POST("/emails/fetch-today", ingestHandler.FetchToday)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		os.Remove(tmpFile.Name())
	}

	return &testEnv{db: db, router: router, userService: userService, jwtManager: jwtManager}, cleanup
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.AuthorizationHeader, middleware.BearerPrefix+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRegisterLoginMeFlow(t *testing.T) {
	env, cleanup := setupEnv(t)
	defer cleanup()

	w := env.request(t, "POST", "/api/auth/register", "", gin.H{
		"username":   "alice",
		"email":      "alice@example.com",
		"password":   "password123",
		"first_name": "Alice",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Duplicate registration conflicts
	w = env.request(t, "POST", "/api/auth/register", "", gin.H{
		"username": "alice",
		"email":    "alice2@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Wrong password rejected
	w = env.request(t, "POST", "/api/auth/login", "", gin.H{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Correct password yields a token
	w = env.request(t, "POST", "/api/auth/login", "", gin.H{
		"username": "alice",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	token := data["token"].(string)
	require.NotEmpty(t, token)

	// Token grants access to /auth/me
	w = env.request(t, "GET", "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	me := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "alice", me["username"])
	assert.Equal(t, "Alice", me["first_name"])
	assert.Equal(t, false, me["mailbox_configured"])

	// No token is a 401
	w = env.request(t, "GET", "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFetchTodayErrorMapping(t *testing.T) {
	env, cleanup := setupEnv(t)
	defer cleanup()

	user, err := env.userService.CreateUser("bob", "bob@example.com", "password123", "", "")
	require.NoError(t, err)
	token, _, err := env.jwtManager.GenerateToken(user.ID, user.Username)
	require.NoError(t, err)

	// No mailbox configured: 400 CONFIG_MISSING
	w := env.request(t, "POST", "/api/emails/fetch-today", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	errObj := decodeBody(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "CONFIG_MISSING", errObj["code"])

	// Configure the mailbox; the test dialer then refuses the login: 400 AUTH_FAILED
	w = env.request(t, "PUT", "/api/user/profile", token, gin.H{
		"mailbox_address":  "bob@example.com",
		"mailbox_password": "app-password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.request(t, "POST", "/api/emails/fetch-today", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	errObj = decodeBody(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "AUTH_FAILED", errObj["code"])
}

func TestListUpdatesEnvelope(t *testing.T) {
	env, cleanup := setupEnv(t)
	defer cleanup()

	user, err := env.userService.CreateUser("carol", "carol@example.com", "password123", "", "")
	require.NoError(t, err)
	token, _, err := env.jwtManager.GenerateToken(user.ID, user.Username)
	require.NoError(t, err)

	older := models.Update{UserID: user.ID, Title: "Older", ReceivedAt: time.Now().Add(-2 * time.Hour)}
	newer := models.Update{UserID: user.ID, Title: "Newer", ReceivedAt: time.Now().Add(-1 * time.Hour)}
	require.NoError(t, env.db.Create(&older).Error)
	require.NoError(t, env.db.Create(&newer).Error)

	w := env.request(t, "GET", "/api/updates", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	updates := body["data"].([]interface{})
	require.Len(t, updates, 2)
	first := updates[0].(map[string]interface{})
	assert.Equal(t, "Newer", first["title"])
}
