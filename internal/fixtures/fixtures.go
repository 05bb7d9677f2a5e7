// Package fixtures loads lesson content from YAML files and writes it through the admin service
package fixtures

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kymyz/lessons/internal/models"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Fixture is the content of one seed file
type Fixture struct {
	Lessons []models.CreateLessonRequest `yaml:"lessons"`
	// Unassigned holds attachments that are stored without a scene
	Unassigned []models.CreateMediaRequest `yaml:"unassigned"`
}

// LessonAdmin is the interface that wraps the admin operations used for seeding
type LessonAdmin interface {
	CreateLesson(ctx context.Context, req *models.CreateLessonRequest) (int, error)
	CreateUnassignedMedia(ctx context.Context, kind models.MediaKind, file string) (int, error)
	DeleteAllLessons(ctx context.Context) (int64, error)
}

// Result summarizes what Apply wrote
type Result struct {
	Deleted    int64
	LessonIDs  []int
	Unassigned int
}

// LoadFile reads a fixture from a YAML file
func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// Decode reads a fixture from YAML. Unknown fields are rejected.
func Decode(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fixture Fixture
	if err := dec.Decode(&fixture); err != nil {
		if errors.Is(err, io.EOF) {
			return &fixture, nil
		}
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	return &fixture, nil
}

// Apply writes the fixture. When reset is set, existing lessons are deleted first.
// Lessons are written one by one; the first failure stops the run.
func Apply(ctx context.Context, admin LessonAdmin, fixture *Fixture, reset bool, logger *zap.Logger) (*Result, error) {
	result := &Result{}

	if reset {
		deleted, err := admin.DeleteAllLessons(ctx)
		if err != nil {
			return result, err
		}
		result.Deleted = deleted
	}

	for i := range fixture.Lessons {
		lesson := &fixture.Lessons[i]
		id, err := admin.CreateLesson(ctx, lesson)
		if err != nil {
			return result, fmt.Errorf("lesson %d (%q): %w", i+1, lesson.Title, err)
		}
		result.LessonIDs = append(result.LessonIDs, id)
	}

	for i, media := range fixture.Unassigned {
		if _, err := admin.CreateUnassignedMedia(ctx, media.Kind, media.File); err != nil {
			return result, fmt.Errorf("unassigned media %d (%q): %w", i+1, media.File, err)
		}
		result.Unassigned++
	}

	logger.Info("fixture applied",
		zap.Int64("deleted", result.Deleted),
		zap.Int("lessons", len(result.LessonIDs)),
		zap.Int("unassigned", result.Unassigned),
	)
	return result, nil
}
