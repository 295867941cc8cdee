package models

import (
	"time"
)

type Course struct {
	ID          string  `json:"id" gorm:"primaryKey;size:36"`
	Title       string  `json:"title" gorm:"not null;size:200;index"`
	Description string  `json:"description" gorm:"not null;type:text"`
	Price       float64 `json:"price" gorm:"not null"`
	Instructor  string  `json:"instructor" gorm:"not null;size:100"`
	Category    string  `json:"category" gorm:"not null;size:100;index"`
	Thumbnail   string  `json:"thumbnail" gorm:"not null;size:500"`
	Duration    string  `json:"duration" gorm:"not null;size:50"` // free text, e.g. "5 hours"

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Enrollments []Enrollment `json:"-" gorm:"foreignKey:CourseID"`

	// Computed fields (not stored)
	EnrolledStudents []string `json:"enrolledStudents" gorm:"-"`
}

func (Course) TableName() string {
	return "courses"
}
