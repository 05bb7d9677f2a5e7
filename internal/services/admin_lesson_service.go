package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kymyz/lessons/internal/models"
	"go.uber.org/zap"
)

// AdminLessonRepository is the interface that wraps methods for administrative lesson writes
type AdminLessonRepository interface {
	// Method CreateWithScenes creates a lesson with its scenes and attachments in one transaction.
	//
	// Returns the ID of the created lesson. A duplicate scene order is reported as models.ErrValidation.
	CreateWithScenes(ctx context.Context, req *models.CreateLessonRequest) (int, error)
	// Method CreateMedia creates a single attachment, assigned to a scene or not.
	CreateMedia(ctx context.Context, req *models.CreateMediaRequest) (int, error)
	// Method Delete deletes a lesson together with its scenes and attachments.
	//
	// models.ErrLessonNotFound is returned when no lesson has the given ID.
	Delete(ctx context.Context, id int) error
	// Method DeleteAll deletes every lesson and returns the number of deleted lessons.
	DeleteAll(ctx context.Context) (int64, error)
}

type adminLessonService struct {
	repo   AdminLessonRepository
	logger *zap.Logger
}

// NewAdminLessonService creates a new admin lesson service
func NewAdminLessonService(repo AdminLessonRepository, logger *zap.Logger) *adminLessonService {
	return &adminLessonService{
		repo:   repo,
		logger: logger,
	}
}

// CreateLesson validates the request and creates the lesson with all of its content.
//
// An empty difficulty is replaced with models.DefaultDifficulty.
func (s *adminLessonService) CreateLesson(ctx context.Context, req *models.CreateLessonRequest) (int, error) {
	if req.Difficulty == "" {
		req.Difficulty = models.DefaultDifficulty
	}
	if err := s.validateLesson(req); err != nil {
		return 0, err
	}

	id, err := s.repo.CreateWithScenes(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("failed to create lesson: %w", err)
	}

	lesson := models.Lesson{ID: id, Title: req.Title, Language: req.Language, Difficulty: req.Difficulty}
	s.logger.Info("lesson created", zap.Int("id", id), zap.Stringer("lesson", lesson), zap.Int("scenes", len(req.Scenes)))
	for _, scene := range req.Scenes {
		s.logger.Debug("scene created", zap.String("scene", models.SceneLabel(lesson, models.LessonScene{Order: scene.Order, Title: scene.Title})))
	}

	return id, nil
}

// CreateUnassignedMedia creates an attachment that is not linked to any scene
func (s *adminLessonService) CreateUnassignedMedia(ctx context.Context, kind models.MediaKind, file string) (int, error) {
	if err := validateMedia(kind, file); err != nil {
		return 0, err
	}

	id, err := s.repo.CreateMedia(ctx, &models.CreateMediaRequest{Kind: kind, File: file})
	if err != nil {
		return 0, fmt.Errorf("failed to create media: %w", err)
	}

	s.logger.Info("unassigned media created", zap.Int("id", id), zap.String("kind", string(kind)), zap.String("file", file))
	return id, nil
}

// DeleteLesson deletes a lesson with all of its content
func (s *adminLessonService) DeleteLesson(ctx context.Context, id int) error {
	if id <= 0 {
		return models.ErrLessonNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}
	return nil
}

// DeleteAllLessons deletes every lesson with all of its content
func (s *adminLessonService) DeleteAllLessons(ctx context.Context) (int64, error) {
	count, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete lessons: %w", err)
	}
	s.logger.Info("lessons deleted", zap.Int64("count", count))
	return count, nil
}

// validateLesson checks the lesson, every scene and every attachment of the request
func (s *adminLessonService) validateLesson(req *models.CreateLessonRequest) error {
	if !req.Difficulty.IsValid() {
		return fmt.Errorf("%w: invalid difficulty %q, must be one of beginner, intermediate, advanced", models.ErrValidation, req.Difficulty)
	}
	if utf8.RuneCountInString(req.Language) > models.MaxLanguageLength {
		return fmt.Errorf("%w: language must be at most %d characters", models.ErrValidation, models.MaxLanguageLength)
	}
	if utf8.RuneCountInString(req.Title) > models.MaxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", models.ErrValidation, models.MaxTitleLength)
	}

	orders := make(map[int]struct{}, len(req.Scenes))
	for _, scene := range req.Scenes {
		if scene.Order < 0 {
			return fmt.Errorf("%w: scene order must not be negative, got %d", models.ErrValidation, scene.Order)
		}
		if _, ok := orders[scene.Order]; ok {
			return fmt.Errorf("%w: duplicate scene order %d", models.ErrValidation, scene.Order)
		}
		orders[scene.Order] = struct{}{}

		if strings.TrimSpace(scene.Title) == "" {
			return fmt.Errorf("%w: scene %d title is required", models.ErrValidation, scene.Order)
		}
		if utf8.RuneCountInString(scene.Title) > models.MaxSceneTitleLength {
			return fmt.Errorf("%w: scene %d title must be at most %d characters", models.ErrValidation, scene.Order, models.MaxSceneTitleLength)
		}

		files := map[models.MediaKind][]string{
			models.MediaKindAudio: scene.Audio,
			models.MediaKindImage: scene.Images,
			models.MediaKindVideo: scene.Videos,
		}
		for _, kind := range models.MediaKinds {
			for _, file := range files[kind] {
				if err := validateMedia(kind, file); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// validateMedia checks the attachment kind and the extension of its file.
// An empty file is allowed since the stored-file reference is nullable.
func validateMedia(kind models.MediaKind, file string) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: invalid media kind %q", models.ErrValidation, kind)
	}
	if file != "" && !kind.AllowsFile(file) {
		return fmt.Errorf("%w: file %q has an extension not allowed for %s, allowed: %s",
			models.ErrValidation, file, kind, strings.Join(models.AllowedExtensions[kind], ", "))
	}
	return nil
}
