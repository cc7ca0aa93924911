package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestMe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := NewTokenStore("secret", "total-health", time.Hour)
	router := gin.New()
	RegisterRoutes(router.Group("/api"), NewHandler(), NewMiddleware(store))

	raw, err := store.IssueToken("vendor-1", RoleVendor)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set(HeaderAuthorization, "Bearer "+raw)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Data struct {
			User struct {
				ID      string `json:"id"`
				Role    Role   `json:"role"`
				IsStaff bool   `json:"isStaff"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.User.ID != "vendor-1" || body.Data.User.Role != RoleVendor || !body.Data.User.IsStaff {
		t.Fatalf("unexpected user %+v", body.Data.User)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
