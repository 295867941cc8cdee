package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/skillnest-io/course-service/internal/models"
	"github.com/skillnest-io/course-service/internal/repositories"
)

type EnrollmentPostgreSQL struct {
	db *gorm.DB
}

func NewEnrollmentPostgreSQL(db *gorm.DB) repositories.EnrollmentRepository {
	return &EnrollmentPostgreSQL{db: db}
}

func (r *EnrollmentPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *EnrollmentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, enrollment *models.Enrollment) error {
	if err := r.getDB(tx).WithContext(ctx).Create(enrollment).Error; err != nil {
		// unique index violations surface as gorm.ErrDuplicatedKey for the
		// caller to map to "already enrolled"
		return fmt.Errorf("failed to create enrollment: %w", err)
	}
	return nil
}

func (r *EnrollmentPostgreSQL) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return count > 0, nil
}

// ListCoursesByUser resolves a user's enrollments to full course documents.
func (r *EnrollmentPostgreSQL) ListCoursesByUser(ctx context.Context, userID string) ([]*models.Course, error) {
	var courses []*models.Course
	err := r.db.WithContext(ctx).
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.user_id = ?", userID).
		Order("enrollments.enrolled_at ASC").
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list courses by user: %w", err)
	}

	for _, c := range courses {
		studentIDs := []string{}
		err := r.db.WithContext(ctx).
			Model(&models.Enrollment{}).
			Where("course_id = ?", c.ID).
			Order("enrolled_at ASC").
			Pluck("user_id", &studentIDs).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load enrolled student ids: %w", err)
		}
		c.EnrolledStudents = studentIDs
	}
	return courses, nil
}

func (r *EnrollmentPostgreSQL) ListByCourse(ctx context.Context, courseID string) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("course_id = ?", courseID).
		Order("enrolled_at ASC").
		Find(&enrollments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments by course: %w", err)
	}
	return enrollments, nil
}

func (r *EnrollmentPostgreSQL) DeleteByCourse(ctx context.Context, tx *gorm.DB, courseID string) error {
	err := r.getDB(tx).WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&models.Enrollment{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete enrollments by course: %w", err)
	}
	return nil
}
