package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/venturelink/backend/internal/pkg/auth"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
	token, _, err := jwtService.GenerateToken("user-1", "user@example.com", "entrepreneur")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	router := gin.New()
	router.GET("/protected", NewAuthMiddleware(jwtService).JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("userID")})
	})
	return router, token
}

func TestJWTAuthBearerHeader(t *testing.T) {
	router, token := newAuthTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestJWTAuthMissingToken(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestJWTAuthQueryTokenOnUpgradeOnly(t *testing.T) {
	router, token := newAuthTestRouter(t)

	// Upgrade request may carry the token as a query parameter
	upgrade := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	router.ServeHTTP(upgrade, req)
	if upgrade.Code != http.StatusOK {
		t.Errorf("upgrade request status = %d, want 200", upgrade.Code)
	}

	// A plain request must not authenticate through the URL
	plain := httptest.NewRecorder()
	router.ServeHTTP(plain, httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil))
	if plain.Code != http.StatusUnauthorized {
		t.Errorf("plain request status = %d, want 401", plain.Code)
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: -time.Minute,
		TokenIssuer:    "test",
	})
	token, _, err := jwtService.GenerateToken("user-1", "user@example.com", "mentor")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	router := gin.New()
	router.GET("/protected", NewAuthMiddleware(jwtService).JWTAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
