package events

import (
	"context"
	"time"
)

const (
	SourceName = "course-service"
	Version    = "1.0"
)

// Event types published by the service.
const (
	TypeUserRegistered    = "user.registered"
	TypeAdminEscalation   = "user.admin_escalation"
	TypeEnrollmentCreated = "enrollment.created"
	TypeCourseDeleted     = "course.deleted"
)

// Event is the envelope for every message published to the event stream.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// EventPublisher publishes domain events. Implementations must be safe for
// concurrent use.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// Payloads

type UserRegisteredEvent struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type AdminEscalationEvent struct {
	Email   string `json:"email"`
	Granted bool   `json:"granted"`
}

type EnrollmentCreatedEvent struct {
	UserID   string `json:"user_id"`
	CourseID string `json:"course_id"`
}

type CourseDeletedEvent struct {
	CourseID         string `json:"course_id"`
	RemovedRosterLen int    `json:"removed_roster_len"`
}
