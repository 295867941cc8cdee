package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gorm.io/gorm"

	"github.com/skillnest-io/course-service/internal/auth"
	"github.com/skillnest-io/course-service/internal/events"
	"github.com/skillnest-io/course-service/internal/ratelimit"
	"github.com/skillnest-io/course-service/internal/repositories"
	"github.com/skillnest-io/course-service/internal/validator"
)

// Dependencies carries the cross-cutting collaborators services need beyond
// the repository.
type Dependencies struct {
	Tokens          *auth.TokenManager
	AdminSecret     string
	RegisterLimiter *ratelimit.Limiter
	Publisher       events.EventPublisher
}

type serviceManager struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	deps      Dependencies

	authService       AuthService
	courseService     CourseService
	enrollmentService EnrollmentService
	userService       UserService
	reportService     ReportService

	initialized bool
	mu          sync.RWMutex
}

func NewServiceManager(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, v *validator.Validator, deps Dependencies) ServiceManager {
	return &serviceManager{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: v,
		deps:      deps,
	}
}

func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if sm.deps.Tokens == nil {
		return fmt.Errorf("token manager is required")
	}
	if sm.deps.Publisher == nil {
		return fmt.Errorf("event publisher is required")
	}

	sm.authService = NewAuthService(sm.repo, sm.logger, sm.validator, sm.deps)
	sm.courseService = NewCourseService(sm.repo, sm.logger, sm.validator, sm.deps.Publisher)
	sm.enrollmentService = NewEnrollmentService(sm.repo, sm.logger, sm.deps.Publisher)
	sm.userService = NewUserService(sm.repo, sm.logger, sm.validator, sm.deps.Tokens)
	sm.reportService = NewReportService(sm.repo, sm.logger)

	sm.initialized = true
	sm.logger.Info("services initialized")
	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return nil
	}
	sm.initialized = false

	if err := sm.deps.Publisher.Close(); err != nil {
		return fmt.Errorf("failed to close event publisher: %w", err)
	}
	return nil
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.authService
}

func (sm *serviceManager) Course() CourseService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.courseService
}

func (sm *serviceManager) Enrollment() EnrollmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.enrollmentService
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.userService
}

func (sm *serviceManager) Report() ReportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.reportService
}
