package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/skillnest-io/course-service/internal/events"
	"github.com/skillnest-io/course-service/internal/models"
	"github.com/skillnest-io/course-service/internal/repositories"
	"github.com/skillnest-io/course-service/internal/validator"
)

type courseService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewCourseService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) CourseService {
	return &courseService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *courseService) List(ctx context.Context) ([]*models.Course, error) {
	return s.repo.Course().List(ctx)
}

func (s *courseService) GetByID(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

func (s *courseService) Create(ctx context.Context, req *CourseCreateRequest) (*models.Course, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	course := &models.Course{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
		Instructor:  req.Instructor,
		Category:    req.Category,
		Thumbnail:   req.Thumbnail,
		Duration:    req.Duration,
	}

	if err := s.repo.Course().Create(ctx, nil, course); err != nil {
		return nil, err
	}
	course.EnrolledStudents = []string{}

	s.logger.Info("course created", "course_id", course.ID, "title", course.Title)
	return course, nil
}

// Update applies a partial merge: only the supplied fields change.
func (s *courseService) Update(ctx context.Context, id string, req *CourseUpdateRequest) (*models.Course, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	course, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.Instructor != nil {
		course.Instructor = *req.Instructor
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	if req.Thumbnail != nil {
		course.Thumbnail = *req.Thumbnail
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}

	if err := s.repo.Course().Update(ctx, nil, course); err != nil {
		return nil, err
	}

	s.logger.Info("course updated", "course_id", course.ID)
	return course, nil
}

// Delete removes the course and its enrollment rows in one transaction, so
// no user is left referencing a course that no longer exists.
func (s *courseService) Delete(ctx context.Context, id string) error {
	course, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Enrollment().DeleteByCourse(ctx, nil, id); err != nil {
			return err
		}
		return txRepo.Course().Delete(ctx, nil, id)
	})
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to delete course: %w", err)
	}

	s.logger.Info("course deleted", "course_id", id, "roster_size", len(course.EnrolledStudents))

	if err := s.publisher.Publish(ctx, &events.Event{
		Type: events.TypeCourseDeleted,
		Data: events.CourseDeletedEvent{CourseID: id, RemovedRosterLen: len(course.EnrolledStudents)},
	}); err != nil {
		s.logger.Error("failed to publish event", "event_type", events.TypeCourseDeleted, "error", err)
	}

	return nil
}
