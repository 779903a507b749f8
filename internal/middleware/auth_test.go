package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"centavo/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAuthRouter() *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware())
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("userID"),
			"email":   c.GetString("email"),
		})
	})
	return r
}

func doAuthRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	user := &models.User{
		Base:  models.Base{ID: "user-1"},
		Email: "ana@example.com",
	}

	t.Run("rejects_missing_header", func(t *testing.T) {
		rec := doAuthRequest(setupAuthRouter(), "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("rejects_malformed_header", func(t *testing.T) {
		rec := doAuthRequest(setupAuthRouter(), "NotBearer token")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("rejects_garbage_token", func(t *testing.T) {
		rec := doAuthRequest(setupAuthRouter(), "Bearer not.a.token")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("rejects_wrong_signing_key", func(t *testing.T) {
		claims := &JWTClaims{
			UserID: user.ID,
			Email:  user.Email,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-key"))
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}

		rec := doAuthRequest(setupAuthRouter(), "Bearer "+token)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("rejects_expired_token", func(t *testing.T) {
		claims := &JWTClaims{
			UserID: user.ID,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(getJWTKey())
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}

		rec := doAuthRequest(setupAuthRouter(), "Bearer "+token)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("rejects_token_without_user_id", func(t *testing.T) {
		claims := &JWTClaims{
			Email: user.Email,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(getJWTKey())
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}

		rec := doAuthRequest(setupAuthRouter(), "Bearer "+token)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("accepts_generated_token_and_sets_identity", func(t *testing.T) {
		token, err := GenerateToken(user)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		rec := doAuthRequest(setupAuthRouter(), "Bearer "+token)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		var body struct {
			UserID string `json:"user_id"`
			Email  string `json:"email"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if body.UserID != "user-1" {
			t.Errorf("user_id = %q, want %q", body.UserID, "user-1")
		}
		if body.Email != "ana@example.com" {
			t.Errorf("email = %q, want %q", body.Email, "ana@example.com")
		}
	})
}
