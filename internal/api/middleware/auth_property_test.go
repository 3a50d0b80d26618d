package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// For any request, only the persisted API key grants access; absent, empty
// or mismatched keys are rejected with 401.

func newKeyedRouter(apiKeyManager *APIKeyManager) *gin.Engine {
	router := gin.New()
	router.Use(APIKeyMiddleware(apiKeyManager))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestProperty_APIKeyAuthentication(t *testing.T) {
	gin.SetMode(gin.TestMode)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	tempDir, err := os.MkdirTemp("", "role_juggler_auth_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	apiKeyManager, err := NewAPIKeyManager(tempDir)
	if err != nil {
		t.Fatalf("Failed to create API key manager: %v", err)
	}
	validKey := apiKeyManager.GetCurrentKey()
	router := newKeyedRouter(apiKeyManager)

	properties.Property("valid_api_key_accepted", prop.ForAll(
		func(_ int) bool {
			req, _ := http.NewRequest("GET", "/test", nil)
			req.Header.Set(APIKeyHeader, validKey)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w.Code == http.StatusOK
		},
		gen.Int(),
	))

	properties.Property("wrong_or_missing_api_key_rejected", prop.ForAll(
		func(key string) bool {
			if key == validKey {
				return true
			}

			req, _ := http.NewRequest("GET", "/test", nil)
			if key != "" {
				req.Header.Set(APIKeyHeader, key)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w.Code == http.StatusUnauthorized
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// A token produced by the manager always validates back to the same user,
// and tampering with the secret or waiting past expiry invalidates it.

func TestProperty_JWTRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	usernameGen := gen.SliceOfN(8, gen.AlphaLowerChar()).Map(func(chars []rune) string {
		return string(chars)
	})

	properties.Property("generated_token_validates", prop.ForAll(
		func(userID uint, username string) bool {
			manager := NewJWTManager("test-secret", time.Hour)
			token, _, err := manager.GenerateToken(userID, username)
			if err != nil {
				return false
			}

			claims, err := manager.ValidateToken(token)
			return err == nil && claims.UserID == userID && claims.Username == username
		},
		gen.UInt(),
		usernameGen,
	))

	properties.Property("token_rejected_by_other_secret", prop.ForAll(
		func(userID uint, username string) bool {
			manager := NewJWTManager("test-secret", time.Hour)
			other := NewJWTManager("another-secret", time.Hour)

			token, _, err := manager.GenerateToken(userID, username)
			if err != nil {
				return false
			}

			_, err = other.ValidateToken(token)
			return err != nil
		},
		gen.UInt(),
		usernameGen,
	))

	properties.TestingRun(t)
}

func TestExpiredTokenRejected(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)
	token, _, err := manager.GenerateToken(1, "expired")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if _, err := manager.ValidateToken(token); err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAPIKeyPersistsAcrossManagers(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "role_juggler_key_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	first, err := NewAPIKeyManager(tempDir)
	if err != nil {
		t.Fatalf("Failed to create API key manager: %v", err)
	}
	second, err := NewAPIKeyManager(tempDir)
	if err != nil {
		t.Fatalf("Failed to create API key manager: %v", err)
	}

	if first.GetCurrentKey() != second.GetCurrentKey() {
		t.Fatal("API key should persist across manager instances")
	}

	newKey, err := second.ResetKey()
	if err != nil {
		t.Fatalf("Failed to reset key: %v", err)
	}
	if newKey == first.GetCurrentKey() {
		t.Fatal("reset should produce a new key")
	}
	if !second.ValidateKey(newKey) {
		t.Fatal("new key should validate")
	}
}
