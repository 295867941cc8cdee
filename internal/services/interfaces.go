package services

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/skillnest-io/course-service/internal/models"
	"github.com/skillnest-io/course-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Request DTOs live in the validator package so validation tags stay in one
// place.
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type CourseCreateRequest = validator.CourseCreateRequest
type CourseUpdateRequest = validator.CourseUpdateRequest
type ProfileUpdateRequest = validator.ProfileUpdateRequest

// AuthResponse is the public profile plus a freshly issued session token.
type AuthResponse struct {
	*models.Profile
	Token string `json:"token"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	// Register creates a student account, or an admin one when the supplied
	// secret matches the server's admin secret. clientKey identifies the
	// caller for rate limiting the secret path.
	Register(ctx context.Context, req *RegisterRequest, clientKey string) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	GetMe(ctx context.Context, userID string) (*models.Profile, error)
}

type CourseService interface {
	List(ctx context.Context) ([]*models.Course, error)
	GetByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, req *CourseCreateRequest) (*models.Course, error)
	Update(ctx context.Context, id string, req *CourseUpdateRequest) (*models.Course, error)
	Delete(ctx context.Context, id string) error
}

type EnrollmentService interface {
	Enroll(ctx context.Context, courseID, userID string) (*models.Course, error)
	ListMyEnrollments(ctx context.Context, userID string) ([]*models.Course, error)
}

type UserService interface {
	List(ctx context.Context) ([]*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, req *ProfileUpdateRequest) (*AuthResponse, error)
}

type ReportService interface {
	// CourseRosterWorkbook builds an xlsx workbook listing everyone enrolled
	// in the course.
	CourseRosterWorkbook(ctx context.Context, courseID string) (*excelize.File, error)
}

// ServiceManager provides access to all services.
type ServiceManager interface {
	Auth() AuthService
	Course() CourseService
	Enrollment() EnrollmentService
	User() UserService
	Report() ReportService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
