package models

import (
	"fmt"
	"time"
)

// Difficulty represents the difficulty level of a lesson
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// DefaultDifficulty is assigned to lessons created without an explicit level
const DefaultDifficulty = DifficultyBeginner

// Column limits of the lessons and lesson_scenes tables
const (
	MaxLanguageLength   = 50
	MaxTitleLength      = 255
	MaxSceneTitleLength = 255
)

// IsValid reports whether d is one of the known difficulty levels
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Lesson represents a row of the lessons table
type Lesson struct {
	ID         int
	Language   string
	Title      string
	Difficulty Difficulty
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (l Lesson) String() string {
	return fmt.Sprintf("%s (%s)", l.Title, l.Language)
}

// LessonGraph is a lesson together with its scenes and their attachments,
// already in default listing order.
type LessonGraph struct {
	Lesson
	Scenes []SceneGraph
}

// LessonResponse represents a lesson in API responses
type LessonResponse struct {
	ID         int             `json:"id"`
	Title      string          `json:"title"`
	Language   string          `json:"language"`
	Difficulty Difficulty      `json:"difficulty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	Scenes     []SceneResponse `json:"scenes"`
}

// CreateLessonRequest represents a request to create a lesson with its content
type CreateLessonRequest struct {
	Language   string               `yaml:"language"`
	Title      string               `yaml:"title"`
	Difficulty Difficulty           `yaml:"difficulty"`
	Scenes     []CreateSceneRequest `yaml:"scenes"`
}
