package services

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/skillnest-io/course-service/internal/models"
	"github.com/skillnest-io/course-service/internal/repositories"
)

// fakeRepository is an in-memory Repository used across the service tests.
// It mirrors the database behaviors the services depend on: not-found
// lookups return gorm.ErrRecordNotFound and unique violations return
// gorm.ErrDuplicatedKey.
type fakeRepository struct {
	mu           sync.Mutex
	users        map[string]*models.User
	courses      map[string]*models.Course
	enrollments  []*models.Enrollment
	audits       []*models.AuditLog
	nextEnrollID uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:   make(map[string]*models.User),
		courses: make(map[string]*models.Course),
	}
}

func (f *fakeRepository) User() repositories.UserRepository             { return &fakeUserRepo{f} }
func (f *fakeRepository) Course() repositories.CourseRepository         { return &fakeCourseRepo{f} }
func (f *fakeRepository) Enrollment() repositories.EnrollmentRepository { return &fakeEnrollmentRepo{f} }
func (f *fakeRepository) Audit() repositories.AuditRepository           { return &fakeAuditRepo{f} }

func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}

func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

func (f *fakeRepository) enrolledCourseIDs(userID string) []string {
	ids := []string{}
	for _, e := range f.enrollments {
		if e.UserID == userID {
			ids = append(ids, e.CourseID)
		}
	}
	return ids
}

func (f *fakeRepository) enrolledUserIDs(courseID string) []string {
	ids := []string{}
	for _, e := range f.enrollments {
		if e.CourseID == courseID {
			ids = append(ids, e.UserID)
		}
	}
	return ids
}

type fakeUserRepo struct{ f *fakeRepository }

func (r *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, u := range r.f.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *user
	r.f.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	u, ok := r.f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	cp.CoursesEnrolled = r.f.enrolledCourseIDs(id)
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, u := range r.f.users {
		if u.Email == email {
			cp := *u
			cp.CoursesEnrolled = r.f.enrolledCourseIDs(u.ID)
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, u := range r.f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*models.User, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	out := make([]*models.User, 0, len(r.f.users))
	for _, u := range r.f.users {
		cp := *u
		cp.CoursesEnrolled = r.f.enrolledCourseIDs(u.ID)
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	for _, u := range r.f.users {
		if u.ID != user.ID && u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *user
	r.f.users[user.ID] = &cp
	return nil
}

type fakeCourseRepo struct{ f *fakeRepository }

func (r *fakeCourseRepo) Create(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	cp := *course
	r.f.courses[course.ID] = &cp
	return nil
}

func (r *fakeCourseRepo) GetByID(ctx context.Context, id string) (*models.Course, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	c, ok := r.f.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	cp.EnrolledStudents = r.f.enrolledUserIDs(id)
	return &cp, nil
}

func (r *fakeCourseRepo) List(ctx context.Context) ([]*models.Course, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	out := make([]*models.Course, 0, len(r.f.courses))
	for _, c := range r.f.courses {
		cp := *c
		cp.EnrolledStudents = r.f.enrolledUserIDs(c.ID)
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCourseRepo) Update(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.courses[course.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *course
	r.f.courses[course.ID] = &cp
	return nil
}

func (r *fakeCourseRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.courses[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.f.courses, id)
	return nil
}

type fakeEnrollmentRepo struct{ f *fakeRepository }

func (r *fakeEnrollmentRepo) Create(ctx context.Context, tx *gorm.DB, enrollment *models.Enrollment) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, e := range r.f.enrollments {
		if e.UserID == enrollment.UserID && e.CourseID == enrollment.CourseID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.f.nextEnrollID++
	cp := *enrollment
	cp.ID = r.f.nextEnrollID
	r.f.enrollments = append(r.f.enrollments, &cp)
	return nil
}

func (r *fakeEnrollmentRepo) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, e := range r.f.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEnrollmentRepo) ListCoursesByUser(ctx context.Context, userID string) ([]*models.Course, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	out := []*models.Course{}
	for _, e := range r.f.enrollments {
		if e.UserID != userID {
			continue
		}
		if c, ok := r.f.courses[e.CourseID]; ok {
			cp := *c
			cp.EnrolledStudents = r.f.enrolledUserIDs(c.ID)
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeEnrollmentRepo) ListByCourse(ctx context.Context, courseID string) ([]*models.Enrollment, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	out := []*models.Enrollment{}
	for _, e := range r.f.enrollments {
		if e.CourseID != courseID {
			continue
		}
		cp := *e
		if u, ok := r.f.users[e.UserID]; ok {
			cp.User = *u
		}
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeEnrollmentRepo) DeleteByCourse(ctx context.Context, tx *gorm.DB, courseID string) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	kept := r.f.enrollments[:0]
	for _, e := range r.f.enrollments {
		if e.CourseID != courseID {
			kept = append(kept, e)
		}
	}
	r.f.enrollments = kept
	return nil
}

// raceLostUserRepository simulates losing a concurrent registration for the
// same email: the pre-check sees no row, the insert hits the unique index.
type raceLostUserRepository struct {
	repositories.Repository
}

func (r raceLostUserRepository) User() repositories.UserRepository {
	return raceLostUserRepo{r.Repository.User()}
}

type raceLostUserRepo struct {
	repositories.UserRepository
}

func (r raceLostUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (r raceLostUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	return fmt.Errorf("failed to create user: %w", gorm.ErrDuplicatedKey)
}

// raceLostEnrollmentRepository simulates losing a concurrent enrollment for
// the same (user, course) pair.
type raceLostEnrollmentRepository struct {
	repositories.Repository
}

func (r raceLostEnrollmentRepository) Enrollment() repositories.EnrollmentRepository {
	return raceLostEnrollmentRepo{r.Repository.Enrollment()}
}

type raceLostEnrollmentRepo struct {
	repositories.EnrollmentRepository
}

func (r raceLostEnrollmentRepo) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	return false, nil
}

func (r raceLostEnrollmentRepo) Create(ctx context.Context, tx *gorm.DB, enrollment *models.Enrollment) error {
	return fmt.Errorf("failed to create enrollment: %w", gorm.ErrDuplicatedKey)
}

type fakeAuditRepo struct{ f *fakeRepository }

func (r *fakeAuditRepo) Create(ctx context.Context, tx *gorm.DB, entry *models.AuditLog) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	cp := *entry
	r.f.audits = append(r.f.audits, &cp)
	return nil
}

func (r *fakeAuditRepo) List(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	out := make([]*models.AuditLog, 0, len(r.f.audits))
	out = append(out, r.f.audits...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
