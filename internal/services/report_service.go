package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/skillnest-io/course-service/internal/repositories"
)

type reportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, logger *slog.Logger) ReportService {
	return &reportService{
		repo:   repo,
		logger: logger,
	}
}

// CourseRosterWorkbook builds an xlsx workbook listing every student
// enrolled in the course, one row per enrollment.
func (s *reportService) CourseRosterWorkbook(ctx context.Context, courseID string) (*excelize.File, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	enrollments, err := s.repo.Enrollment().ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Roster"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Student ID", "Name", "Email", "Enrolled At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, e := range enrollments {
		values := []interface{}{
			e.UserID,
			e.User.Name,
			e.User.Email,
			e.EnrolledAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	s.logger.Info("roster workbook generated", "course_id", course.ID, "rows", len(enrollments))
	return f, nil
}
