package models

import (
	"time"
)

// Enrollment is the normalized membership row between a user and a course.
// The composite unique index makes duplicate enrollment impossible even under
// concurrent requests, and both roster projections are derived from it, so
// membership is symmetric by construction.
type Enrollment struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	UserID   string `json:"userId" gorm:"not null;size:36;uniqueIndex:idx_enrollments_user_course"`
	CourseID string `json:"courseId" gorm:"not null;size:36;uniqueIndex:idx_enrollments_user_course"`

	EnrolledAt time.Time `json:"enrolledAt" gorm:"autoCreateTime"`

	// Relations
	User   User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course Course `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
