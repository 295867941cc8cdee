package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/skillnest-io/course-service/internal/models"
	"github.com/skillnest-io/course-service/internal/repositories"
)

type CoursePostgreSQL struct {
	db *gorm.DB
}

func NewCoursePostgreSQL(db *gorm.DB) repositories.CourseRepository {
	return &CoursePostgreSQL{db: db}
}

func (r *CoursePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *CoursePostgreSQL) Create(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	if err := r.getDB(tx).WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

// GetByID loads a course together with the enrolledStudents projection.
func (r *CoursePostgreSQL) GetByID(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	if err := r.loadEnrolledStudentIDs(ctx, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CoursePostgreSQL) List(ctx context.Context) ([]*models.Course, error) {
	var courses []*models.Course
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	for _, c := range courses {
		if err := r.loadEnrolledStudentIDs(ctx, c); err != nil {
			return nil, err
		}
	}
	return courses, nil
}

func (r *CoursePostgreSQL) Update(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	if err := r.getDB(tx).WithContext(ctx).Save(course).Error; err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}
	return nil
}

func (r *CoursePostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	result := r.getDB(tx).WithContext(ctx).Delete(&models.Course{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete course: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CoursePostgreSQL) loadEnrolledStudentIDs(ctx context.Context, course *models.Course) error {
	studentIDs := []string{}
	err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("course_id = ?", course.ID).
		Order("enrolled_at ASC").
		Pluck("user_id", &studentIDs).Error
	if err != nil {
		return fmt.Errorf("failed to load enrolled student ids: %w", err)
	}
	course.EnrolledStudents = studentIDs
	return nil
}
