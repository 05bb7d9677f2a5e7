// Package projection turns lesson graphs into the documents served by the API.
//
// Projection never reorders: lessons, scenes and attachments keep the order
// in which the query layer returned them. Only lessons carry their identifier.
package projection

import (
	"strings"
	"time"

	"github.com/kymyz/lessons/internal/models"
)

// Lessons projects a list of lesson graphs.
// The result is never nil so that an empty list is encoded as [].
func Lessons(graphs []models.LessonGraph, mediaBaseURL string) []models.LessonResponse {
	out := make([]models.LessonResponse, len(graphs))
	for i, graph := range graphs {
		out[i] = Lesson(graph, mediaBaseURL)
	}
	return out
}

// Lesson projects a single lesson graph.
//
// When mediaBaseURL is not empty, relative file references are prefixed with it.
func Lesson(graph models.LessonGraph, mediaBaseURL string) models.LessonResponse {
	scenes := make([]models.SceneResponse, len(graph.Scenes))
	for i, scene := range graph.Scenes {
		scenes[i] = Scene(scene, mediaBaseURL)
	}

	return models.LessonResponse{
		ID:         graph.ID,
		Title:      graph.Title,
		Language:   graph.Language,
		Difficulty: graph.Difficulty,
		CreatedAt:  graph.CreatedAt.UTC().Truncate(time.Microsecond),
		UpdatedAt:  graph.UpdatedAt.UTC().Truncate(time.Microsecond),
		Scenes:     scenes,
	}
}

// Scene projects a single scene graph
func Scene(scene models.SceneGraph, mediaBaseURL string) models.SceneResponse {
	audio := make([]models.AudioResponse, len(scene.AudioFiles))
	for i, item := range scene.AudioFiles {
		audio[i] = models.AudioResponse{Audio: FileURL(item.File, mediaBaseURL)}
	}
	images := make([]models.ImageResponse, len(scene.Images))
	for i, item := range scene.Images {
		images[i] = models.ImageResponse{Image: FileURL(item.File, mediaBaseURL)}
	}
	videos := make([]models.VideoResponse, len(scene.Videos))
	for i, item := range scene.Videos {
		videos[i] = models.VideoResponse{Video: FileURL(item.File, mediaBaseURL)}
	}

	return models.SceneResponse{
		Order:      scene.Order,
		Title:      scene.Title,
		Content:    scene.Content,
		AudioFiles: audio,
		Images:     images,
		Videos:     videos,
	}
}

// FileURL resolves a stored-file reference.
// Nil or empty references stay nil, absolute URLs are returned unchanged.
func FileURL(file *string, mediaBaseURL string) *string {
	if file == nil || *file == "" {
		return nil
	}
	ref := *file
	if mediaBaseURL == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return &ref
	}
	url := strings.TrimRight(mediaBaseURL, "/") + "/" + strings.TrimLeft(ref, "/")
	return &url
}
