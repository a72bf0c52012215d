package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newIdentityRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Identity())
	router.GET("/api/v1/documents", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"username": UsernameFromContext(c),
			"isAdmin":  IsAdminFromContext(c),
		})
	})
	return router
}

func TestIdentityMissingHeader(t *testing.T) {
	router := newIdentityRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestIdentitySetsContext(t *testing.T) {
	router := newIdentityRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	req.Header.Set("X-User-Id", "alice")
	req.Header.Set("X-Admin", "TRUE")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	if body != `{"isAdmin":true,"username":"alice"}` {
		t.Errorf("body = %s", body)
	}
}

func TestIdentityNonAdminByDefault(t *testing.T) {
	router := newIdentityRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	req.Header.Set("X-User-Id", "bob")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Body.String() != `{"isAdmin":false,"username":"bob"}` {
		t.Errorf("body = %s", resp.Body.String())
	}
}
