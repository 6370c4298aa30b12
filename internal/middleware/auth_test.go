package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quiz-platform/internal/config"
	"quiz-platform/internal/models"

	"github.com/gin-gonic/gin"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Protect(), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, user)
	})
	r.GET("/admin", Protect(), Authorize(models.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestProtectAndAuthorize(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret", JWTTTLHours: 1}
	r := testRouter()

	adminToken, err := SignToken("u1", models.RoleAdmin)
	if err != nil {
		t.Fatalf("SignToken returned error: %v", err)
	}
	userToken, err := SignToken("u2", models.RoleUser)
	if err != nil {
		t.Fatalf("SignToken returned error: %v", err)
	}

	testCases := []struct {
		name       string
		path       string
		authHeader string
		wantStatus int
	}{
		{"no token", "/me", "", http.StatusUnauthorized},
		{"malformed header", "/me", "Token abc", http.StatusUnauthorized},
		{"garbage token", "/me", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid token", "/me", "Bearer " + userToken, http.StatusOK},
		{"user hits admin route", "/admin", "Bearer " + userToken, http.StatusForbidden},
		{"admin hits admin route", "/admin", "Bearer " + adminToken, http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tc.wantStatus)
			}
		})
	}
}

func TestTokenRoundTripCarriesIdentity(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret", JWTTTLHours: 1}
	r := testRouter()

	token, err := SignToken("user-42", models.RoleUser)
	if err != nil {
		t.Fatalf("SignToken returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got models.AuthUser
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.ID != "user-42" || got.Role != models.RoleUser {
		t.Errorf("resolved identity = %+v, want user-42/%s", got, models.RoleUser)
	}
}
