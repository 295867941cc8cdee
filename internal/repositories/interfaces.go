package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/skillnest-io/course-service/internal/models"
)

// Mutating methods take an optional *gorm.DB so services can group writes in
// one transaction; nil means the repository's own connection.

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, tx *gorm.DB, user *models.User) error
}

type CourseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, course *models.Course) error
	GetByID(ctx context.Context, id string) (*models.Course, error)
	List(ctx context.Context) ([]*models.Course, error)
	Update(ctx context.Context, tx *gorm.DB, course *models.Course) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type EnrollmentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, enrollment *models.Enrollment) error
	Exists(ctx context.Context, userID, courseID string) (bool, error)
	ListCoursesByUser(ctx context.Context, userID string) ([]*models.Course, error)
	ListByCourse(ctx context.Context, courseID string) ([]*models.Enrollment, error)
	DeleteByCourse(ctx context.Context, tx *gorm.DB, courseID string) error
}

type AuditRepository interface {
	Create(ctx context.Context, tx *gorm.DB, entry *models.AuditLog) error
	List(ctx context.Context, limit int) ([]*models.AuditLog, error)
}
