package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/skillnest-io/course-service/internal/events"
	"github.com/skillnest-io/course-service/internal/models"
	"github.com/skillnest-io/course-service/internal/repositories"
)

type enrollmentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	publisher events.EventPublisher
}

func NewEnrollmentService(repo repositories.Repository, logger *slog.Logger, publisher events.EventPublisher) EnrollmentService {
	return &enrollmentService{
		repo:      repo,
		logger:    logger,
		publisher: publisher,
	}
}

// Enroll adds the user to the course roster. Membership is one row in the
// enrollments table, so both sides of the relationship change atomically and
// a concurrent duplicate attempt is rejected by the unique index.
func (s *enrollmentService) Enroll(ctx context.Context, courseID, userID string) (*models.Course, error) {
	if _, err := s.repo.Course().GetByID(ctx, courseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	enrolled, err := s.repo.Enrollment().Exists(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, ErrAlreadyEnrolled
	}

	enrollment := &models.Enrollment{UserID: userID, CourseID: courseID}
	if err := s.repo.Enrollment().Create(ctx, nil, enrollment); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}

	s.logger.Info("user enrolled", "user_id", userID, "course_id", courseID)

	if err := s.publisher.Publish(ctx, &events.Event{
		Type: events.TypeEnrollmentCreated,
		Data: events.EnrollmentCreatedEvent{UserID: userID, CourseID: courseID},
	}); err != nil {
		s.logger.Error("failed to publish event", "event_type", events.TypeEnrollmentCreated, "error", err)
	}

	// Return the course with its refreshed roster.
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload course: %w", err)
	}
	return course, nil
}

func (s *enrollmentService) ListMyEnrollments(ctx context.Context, userID string) ([]*models.Course, error) {
	if _, err := s.repo.User().GetByID(ctx, userID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return s.repo.Enrollment().ListCoursesByUser(ctx, userID)
}
