package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillnest-io/course-service/internal/models"
	"github.com/skillnest-io/course-service/internal/services"
)

type stubAuthService struct {
	registered map[string]bool
	password   string
}

func (s *stubAuthService) Register(ctx context.Context, req *services.RegisterRequest, clientKey string) (*services.AuthResponse, error) {
	if s.registered[req.Email] {
		return nil, services.ErrUserAlreadyExists
	}
	s.registered[req.Email] = true
	return &services.AuthResponse{
		Profile: &models.Profile{ID: "user-1", Name: req.Name, Email: req.Email, Role: models.RoleStudent, CoursesEnrolled: []string{}},
		Token:   "issued-token",
	}, nil
}

func (s *stubAuthService) Login(ctx context.Context, req *services.LoginRequest) (*services.AuthResponse, error) {
	if !s.registered[req.Email] || req.Password != s.password {
		return nil, services.ErrInvalidCredentials
	}
	return &services.AuthResponse{
		Profile: &models.Profile{ID: "user-1", Email: req.Email, Role: models.RoleStudent, CoursesEnrolled: []string{}},
		Token:   "issued-token",
	}, nil
}

func (s *stubAuthService) GetMe(ctx context.Context, userID string) (*models.Profile, error) {
	return nil, services.ErrUserNotFound
}

const testSessionTTL = 2 * time.Hour

func newAuthHandlerRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(&stubAuthService{
		registered: map[string]bool{"alice@example.com": true},
		password:   "password123",
	}, testSessionTTL, testLogger())

	router := gin.New()
	router.POST("/api/auth/register", h.Register)
	router.POST("/api/auth/login", h.Login)
	router.POST("/api/auth/logout", h.Logout)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	router := newAuthHandlerRouter()

	t.Run("new account", func(t *testing.T) {
		w := postJSON(router, "/api/auth/register",
			`{"name":"Bob","email":"bob@example.com","password":"password123"}`)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var resp services.AuthResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		if resp.Token == "" {
			t.Error("expected a token in the response")
		}

		// Token is also set as the legacy session cookie, with the
		// configured lifetime.
		found := false
		for _, c := range w.Result().Cookies() {
			if c.Name == sessionCookieName && c.Value != "" {
				found = true
				if c.MaxAge != int(testSessionTTL.Seconds()) {
					t.Errorf("expected cookie MaxAge %d, got %d", int(testSessionTTL.Seconds()), c.MaxAge)
				}
			}
		}
		if !found {
			t.Error("expected session cookie to be set")
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		w := postJSON(router, "/api/auth/register",
			`{"name":"Alice","email":"alice@example.com","password":"password123"}`)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "User already exists") {
			t.Errorf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		w := postJSON(router, "/api/auth/register", `{"name":`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestAuthHandler_Login(t *testing.T) {
	router := newAuthHandlerRouter()

	t.Run("valid credentials", func(t *testing.T) {
		w := postJSON(router, "/api/auth/login",
			`{"email":"alice@example.com","password":"password123"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		w := postJSON(router, "/api/auth/login",
			`{"email":"alice@example.com","password":"nope"}`)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Invalid email or password") {
			t.Errorf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	router := newAuthHandlerRouter()

	w := postJSON(router, "/api/auth/logout", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	// Logout clears the session cookie.
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName && c.MaxAge >= 0 {
			t.Errorf("expected expired cookie, got MaxAge %d", c.MaxAge)
		}
	}
}
