package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/moneta-app/moneta-backend/internal/auth"
	"github.com/moneta-app/moneta-backend/internal/service"
	"github.com/moneta-app/moneta-backend/internal/testutil"
)

func newAuthHandler() (*AuthHandler, *testutil.MockUserRepository) {
	userRepo := testutil.NewMockUserRepository()
	userRepo.Categories = testutil.NewMockCategoryRepository()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	return NewAuthHandler(service.NewAuthService(userRepo, tokens)), userRepo
}

func TestRegisterHandler(t *testing.T) {
	e := echo.New()
	h, _ := newAuthHandler()

	c, rec := newTestContext(e, http.MethodPost, "/api/v1/auth/register", `{"username":"alice","password":"hunter2"}`, 0)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var resp UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp.Username != "alice" {
		t.Errorf("Expected username alice, got %s", resp.Username)
	}
	if resp.ID == 0 {
		t.Error("Expected a non-zero user ID")
	}
}

func TestRegisterHandlerValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty username", `{"username":"","password":"secret"}`, http.StatusBadRequest},
		{"empty password", `{"username":"alice","password":""}`, http.StatusBadRequest},
		{"malformed body", `{not json`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			h, _ := newAuthHandler()
			c, rec := newTestContext(e, http.MethodPost, "/api/v1/auth/register", tt.body, 0)
			if err := h.Register(c); err != nil {
				t.Fatalf("Register failed: %v", err)
			}
			if rec.Code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestRegisterHandlerDuplicate(t *testing.T) {
	e := echo.New()
	h, _ := newAuthHandler()

	c, _ := newTestContext(e, http.MethodPost, "/api/v1/auth/register", `{"username":"alice","password":"hunter2"}`, 0)
	if err := h.Register(c); err != nil {
		t.Fatalf("First register failed: %v", err)
	}

	c, rec := newTestContext(e, http.MethodPost, "/api/v1/auth/register", `{"username":"alice","password":"other"}`, 0)
	if err := h.Register(c); err != nil {
		t.Fatalf("Second register failed: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}

func TestLoginHandler(t *testing.T) {
	e := echo.New()
	h, _ := newAuthHandler()

	c, _ := newTestContext(e, http.MethodPost, "/api/v1/auth/register", `{"username":"bob","password":"secret"}`, 0)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	c, rec := newTestContext(e, http.MethodPost, "/api/v1/auth/login", `{"username":"bob","password":"secret"}`, 0)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var resp LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp.Token == "" {
		t.Error("Expected a non-empty token")
	}
	if resp.User.Username != "bob" {
		t.Errorf("Expected username bob, got %s", resp.User.Username)
	}
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	e := echo.New()
	h, _ := newAuthHandler()

	c, _ := newTestContext(e, http.MethodPost, "/api/v1/auth/register", `{"username":"bob","password":"secret"}`, 0)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	for _, body := range []string{
		`{"username":"bob","password":"wrong"}`,
		`{"username":"nobody","password":"secret"}`,
	} {
		c, rec := newTestContext(e, http.MethodPost, "/api/v1/auth/login", body, 0)
		if err := h.Login(c); err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", rec.Code)
		}
	}
}

func TestMeHandler(t *testing.T) {
	e := echo.New()
	h, _ := newAuthHandler()

	c, rec := newTestContext(e, http.MethodPost, "/api/v1/auth/register", `{"username":"carol","password":"secret"}`, 0)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	var registered UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &registered); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	c, rec = newTestContext(e, http.MethodGet, "/api/v1/auth/me", "", registered.ID)
	if err := h.Me(c); err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var resp UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp.ID != registered.ID {
		t.Errorf("Expected user ID %d, got %d", registered.ID, resp.ID)
	}
}

func TestMeHandlerUnauthenticated(t *testing.T) {
	e := echo.New()
	h, _ := newAuthHandler()

	c, rec := newTestContext(e, http.MethodGet, "/api/v1/auth/me", "", 0)
	if err := h.Me(c); err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}
