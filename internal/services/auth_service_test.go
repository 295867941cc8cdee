package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/skillnest-io/course-service/internal/auth"
	"github.com/skillnest-io/course-service/internal/events"
	"github.com/skillnest-io/course-service/internal/models"
	"github.com/skillnest-io/course-service/internal/repositories"
	"github.com/skillnest-io/course-service/internal/validator"
)

func newTestAuthService(repo repositories.Repository, publisher events.EventPublisher) AuthService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewAuthService(repo, logger, validator.New(), Dependencies{
		Tokens:      auth.NewTokenManager("test-secret", time.Hour),
		AdminSecret: "let-me-in",
		Publisher:   publisher,
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	t.Run("creates student account and issues token", func(t *testing.T) {
		repo := newFakeRepository()
		publisher := events.NewMockEventPublisher(logger)
		service := newTestAuthService(repo, publisher)

		resp, err := service.Register(ctx, &RegisterRequest{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "password123",
		}, "10.0.0.1")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if resp.Token == "" {
			t.Error("expected a token")
		}
		if resp.Role != models.RoleStudent {
			t.Errorf("expected role %s, got %s", models.RoleStudent, resp.Role)
		}
		if resp.CoursesEnrolled == nil || len(resp.CoursesEnrolled) != 0 {
			t.Errorf("expected empty coursesEnrolled, got %v", resp.CoursesEnrolled)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("expected 1 event, got %d", len(published))
		}
		if published[0].Type != events.TypeUserRegistered {
			t.Errorf("expected event type %s, got %s", events.TypeUserRegistered, published[0].Type)
		}
	})

	t.Run("grants admin role when secret matches", func(t *testing.T) {
		repo := newFakeRepository()
		publisher := events.NewMockEventPublisher(logger)
		service := newTestAuthService(repo, publisher)

		resp, err := service.Register(ctx, &RegisterRequest{
			Name:      "Root",
			Email:     "root@example.com",
			Password:  "password123",
			SecretKey: "let-me-in",
		}, "10.0.0.1")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if resp.Role != models.RoleAdmin {
			t.Errorf("expected admin role, got %s", resp.Role)
		}

		audits, _ := repo.Audit().List(ctx, 10)
		if len(audits) != 1 {
			t.Fatalf("expected 1 audit entry, got %d", len(audits))
		}
		if audits[0].Action != models.AuditAdminEscalationGranted {
			t.Errorf("expected granted audit action, got %s", audits[0].Action)
		}
	})

	t.Run("wrong secret registers a student and audits the denial", func(t *testing.T) {
		repo := newFakeRepository()
		publisher := events.NewMockEventPublisher(logger)
		service := newTestAuthService(repo, publisher)

		resp, err := service.Register(ctx, &RegisterRequest{
			Name:      "Mallory",
			Email:     "mallory@example.com",
			Password:  "password123",
			SecretKey: "guess",
		}, "10.0.0.2")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if resp.Role != models.RoleStudent {
			t.Errorf("expected student role, got %s", resp.Role)
		}

		audits, _ := repo.Audit().List(ctx, 10)
		if len(audits) != 1 || audits[0].Action != models.AuditAdminEscalationDenied {
			t.Errorf("expected a denied audit entry, got %+v", audits)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		repo := newFakeRepository()
		publisher := events.NewMockEventPublisher(logger)
		service := newTestAuthService(repo, publisher)

		req := &RegisterRequest{Name: "Bob", Email: "bob@example.com", Password: "password123"}
		if _, err := service.Register(ctx, req, "10.0.0.1"); err != nil {
			t.Fatalf("first Register failed: %v", err)
		}
		_, err := service.Register(ctx, req, "10.0.0.1")
		if !errors.Is(err, ErrUserAlreadyExists) {
			t.Errorf("expected ErrUserAlreadyExists, got %v", err)
		}
	})

	t.Run("losing a concurrent registration maps to existing user", func(t *testing.T) {
		// The pre-check passes but the insert hits the unique email index.
		repo := raceLostUserRepository{Repository: newFakeRepository()}
		publisher := events.NewMockEventPublisher(logger)
		service := newTestAuthService(repo, publisher)

		_, err := service.Register(ctx, &RegisterRequest{
			Name:     "Eve",
			Email:    "eve@example.com",
			Password: "password123",
		}, "10.0.0.1")
		if !errors.Is(err, ErrUserAlreadyExists) {
			t.Errorf("expected ErrUserAlreadyExists, got %v", err)
		}
	})

	t.Run("taken email skips the secret path entirely", func(t *testing.T) {
		repo := newFakeRepository()
		publisher := events.NewMockEventPublisher(logger)
		service := newTestAuthService(repo, publisher)

		req := &RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "password123"}
		if _, err := service.Register(ctx, req, "10.0.0.1"); err != nil {
			t.Fatalf("first Register failed: %v", err)
		}
		publisher.ClearEvents()

		taken := &RegisterRequest{Name: "Eve", Email: "alice@example.com", Password: "password123", SecretKey: "guess"}
		if _, err := service.Register(ctx, taken, "10.0.0.2"); !errors.Is(err, ErrUserAlreadyExists) {
			t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
		}

		// No audit row or escalation event for a registration that was
		// rejected on the email check.
		audits, _ := repo.Audit().List(ctx, 10)
		if len(audits) != 0 {
			t.Errorf("expected no audit entries, got %d", len(audits))
		}
		if published := publisher.GetPublishedEvents(); len(published) != 0 {
			t.Errorf("expected no events, got %d", len(published))
		}
	})

	t.Run("invalid payload fails validation", func(t *testing.T) {
		repo := newFakeRepository()
		publisher := events.NewMockEventPublisher(logger)
		service := newTestAuthService(repo, publisher)

		_, err := service.Register(ctx, &RegisterRequest{
			Name:     "Short",
			Email:    "not-an-email",
			Password: "123",
		}, "10.0.0.1")
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("expected validation errors, got %v", err)
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := newFakeRepository()
	publisher := events.NewMockEventPublisher(logger)
	service := newTestAuthService(repo, publisher)

	if _, err := service.Register(ctx, &RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	}, "10.0.0.1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := service.Login(ctx, &LoginRequest{Email: "alice@example.com", Password: "password123"})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if resp.Token == "" {
			t.Error("expected a token")
		}
		if resp.Email != "alice@example.com" {
			t.Errorf("unexpected email %s", resp.Email)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(ctx, &LoginRequest{Email: "alice@example.com", Password: "wrong-password"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := service.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "password123"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := newFakeRepository()
	publisher := events.NewMockEventPublisher(logger)
	service := newTestAuthService(repo, publisher)

	resp, err := service.Register(ctx, &RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	}, "10.0.0.1")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	profile, err := service.GetMe(ctx, resp.ID)
	if err != nil {
		t.Fatalf("GetMe failed: %v", err)
	}
	if profile.Email != "alice@example.com" {
		t.Errorf("unexpected email %s", profile.Email)
	}

	if _, err := service.GetMe(ctx, "missing-id"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
