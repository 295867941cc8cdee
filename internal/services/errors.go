package services

import "errors"

// Sentinel errors returned by services; handlers map them to HTTP statuses.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrTooManyAttempts    = errors.New("too many attempts, try again later")
)
