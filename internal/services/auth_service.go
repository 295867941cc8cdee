package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/skillnest-io/course-service/internal/auth"
	"github.com/skillnest-io/course-service/internal/events"
	"github.com/skillnest-io/course-service/internal/models"
	"github.com/skillnest-io/course-service/internal/ratelimit"
	"github.com/skillnest-io/course-service/internal/repositories"
	"github.com/skillnest-io/course-service/internal/validator"
)

type authService struct {
	repo        repositories.Repository
	logger      *slog.Logger
	validator   *validator.Validator
	tokens      *auth.TokenManager
	adminSecret string
	limiter     *ratelimit.Limiter
	publisher   events.EventPublisher
}

func NewAuthService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, deps Dependencies) AuthService {
	return &authService{
		repo:        repo,
		logger:      logger,
		validator:   v,
		tokens:      deps.Tokens,
		adminSecret: deps.AdminSecret,
		limiter:     deps.RegisterLimiter,
		publisher:   deps.Publisher,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest, clientKey string) (*AuthResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	// Existence is checked before the secret path so re-registering a taken
	// email cannot burn rate-limit slots or leave audit rows behind.
	exists, err := s.repo.User().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	role := models.RoleStudent
	if req.SecretKey != "" {
		granted, err := s.resolveAdminSecret(ctx, req, clientKey)
		if err != nil {
			return nil, err
		}
		if granted {
			role = models.RoleAdmin
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     role,
	}

	if err := s.repo.User().Create(ctx, nil, user); err != nil {
		// Concurrent registration for the same email loses to the unique
		// index and maps to the same conflict error as the pre-check.
		if repositories.IsDuplicateError(err) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)

	s.publishEvent(ctx, &events.Event{
		Type: events.TypeUserRegistered,
		Data: events.UserRegisteredEvent{UserID: user.ID, Email: user.Email, Role: string(user.Role)},
	})

	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return s.buildAuthResponse(user)
}

func (s *authService) GetMe(ctx context.Context, userID string) (*models.Profile, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user.ToProfile(), nil
}

// resolveAdminSecret rate-limits and audits the admin-secret path, then
// reports whether the escalation is granted.
func (s *authService) resolveAdminSecret(ctx context.Context, req *RegisterRequest, clientKey string) (bool, error) {
	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, clientKey)
		if err != nil {
			s.logger.Error("rate limiter unavailable", "error", err)
		} else if !allowed {
			s.logger.Warn("admin secret attempts rate limited", "client", clientKey)
			return false, ErrTooManyAttempts
		}
	}

	granted := s.adminSecret != "" && req.SecretKey == s.adminSecret

	s.audit(ctx, req.Email, granted, clientKey)
	s.publishEvent(ctx, &events.Event{
		Type: events.TypeAdminEscalation,
		Data: events.AdminEscalationEvent{Email: req.Email, Granted: granted},
	})

	return granted, nil
}

func (s *authService) audit(ctx context.Context, email string, granted bool, clientKey string) {
	action := models.AuditAdminEscalationDenied
	if granted {
		action = models.AuditAdminEscalationGranted
	}

	payload, err := json.Marshal(map[string]interface{}{
		"client":  clientKey,
		"granted": granted,
	})
	if err != nil {
		payload = []byte("{}")
	}

	entry := &models.AuditLog{
		Actor:   email,
		Action:  action,
		Payload: datatypes.JSON(payload),
	}
	if err := s.repo.Audit().Create(ctx, nil, entry); err != nil {
		// Audit failure must not block registration.
		s.logger.Error("failed to write audit log", "error", err)
	}
}

func (s *authService) publishEvent(ctx context.Context, event *events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish event", "event_type", event.Type, "error", err)
	}
}

func (s *authService) buildAuthResponse(user *models.User) (*AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Profile: user.ToProfile(), Token: token}, nil
}
