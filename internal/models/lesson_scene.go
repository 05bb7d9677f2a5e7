package models

import "fmt"

// LessonScene represents a row of the lesson_scenes table
type LessonScene struct {
	ID       int
	LessonID int
	Order    int
	Title    string
	Content  string
}

// SceneGraph is a scene together with its attachments, newest first
type SceneGraph struct {
	LessonScene
	AudioFiles []Media
	Images     []Media
	Videos     []Media
}

// SceneLabel formats a scene for logs the same way for every caller
func SceneLabel(lesson Lesson, scene LessonScene) string {
	return fmt.Sprintf("%s - Scene %d: %s", lesson.Title, scene.Order, scene.Title)
}

// SceneResponse represents a lesson scene in API responses (without ID)
type SceneResponse struct {
	Order      int             `json:"order"`
	Title      string          `json:"title"`
	Content    string          `json:"content"`
	AudioFiles []AudioResponse `json:"audioFiles"`
	Images     []ImageResponse `json:"images"`
	Videos     []VideoResponse `json:"videos"`
}

// CreateSceneRequest represents a request to create a scene inside a lesson
type CreateSceneRequest struct {
	Order   int      `yaml:"order"`
	Title   string   `yaml:"title"`
	Content string   `yaml:"content"`
	Audio   []string `yaml:"audio"`
	Images  []string `yaml:"images"`
	Videos  []string `yaml:"videos"`
}
