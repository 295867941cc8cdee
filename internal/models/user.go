package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	ID       string   `json:"id" gorm:"primaryKey;size:36"`
	Name     string   `json:"name" gorm:"not null;size:100"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password string   `json:"-" gorm:"not null;size:255"` // bcrypt hash, never serialized
	Role     UserRole `json:"role" gorm:"not null;default:student;size:16"`

	// Profile info
	Avatar *string `json:"avatar" gorm:"size:500"`
	Bio    *string `json:"bio" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Enrollments []Enrollment `json:"-" gorm:"foreignKey:UserID"`

	// Computed fields (not stored)
	CoursesEnrolled []string `json:"coursesEnrolled" gorm:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Profile is the public projection of a user, safe for API responses.
type Profile struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Role            UserRole `json:"role"`
	Avatar          *string  `json:"avatar"`
	Bio             *string  `json:"bio"`
	CoursesEnrolled []string `json:"coursesEnrolled"`
}

func (u *User) ToProfile() *Profile {
	courses := u.CoursesEnrolled
	if courses == nil {
		courses = []string{}
	}
	return &Profile{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		Avatar:          u.Avatar,
		Bio:             u.Bio,
		CoursesEnrolled: courses,
	}
}
