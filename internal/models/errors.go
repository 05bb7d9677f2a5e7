package models

import "errors"

var (
	// ErrLessonNotFound is returned when no lesson exists for the requested id
	ErrLessonNotFound = errors.New("lesson not found")
	// ErrValidation is wrapped by every validation failure of the admin write path
	ErrValidation = errors.New("validation failed")
)
