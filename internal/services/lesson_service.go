package services

import (
	"context"
	"fmt"

	"github.com/kymyz/lessons/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// LessonRepository is the interface that wraps methods for Lessons table data access
type LessonRepository interface {
	// Method GetAll retrieve all lessons ordered by creation time, newest first.
	//
	// If some error will occur during data retrieve, the error will be returned together with "nil" value.
	GetAll(ctx context.Context) ([]models.Lesson, error)
	// Method GetByID retrieve a lesson by its ID.
	//
	// models.ErrLessonNotFound is returned when no lesson has the given ID.
	GetByID(ctx context.Context, id int) (*models.Lesson, error)
}

// LessonSceneRepository is the interface that wraps methods for Lesson Scenes table data access
type LessonSceneRepository interface {
	// Method GetByLessonIDs retrieve scenes of all given lessons in one round trip,
	// ordered by lesson and scene order.
	GetByLessonIDs(ctx context.Context, lessonIDs []int) ([]models.LessonScene, error)
}

// MediaRepository is the interface that wraps methods for scene attachment tables data access
type MediaRepository interface {
	// Method GetBySceneIDs retrieve attachments of one kind for all given scenes in one round trip, newest first.
	//
	// Please reference MediaKind constants for correct "kind" values.
	GetBySceneIDs(ctx context.Context, kind models.MediaKind, sceneIDs []int) ([]models.Media, error)
}

type lessonService struct {
	lessonRepo LessonRepository
	sceneRepo  LessonSceneRepository
	mediaRepo  MediaRepository
	logger     *zap.Logger
}

// NewLessonService creates a new lesson service
func NewLessonService(lessonRepo LessonRepository, sceneRepo LessonSceneRepository, mediaRepo MediaRepository, logger *zap.Logger) *lessonService {
	return &lessonService{
		lessonRepo: lessonRepo,
		sceneRepo:  sceneRepo,
		mediaRepo:  mediaRepo,
		logger:     logger,
	}
}

// ListLessons retrieves every lesson with its scenes and their attachments
func (s *lessonService) ListLessons(ctx context.Context) ([]models.LessonGraph, error) {
	lessons, err := s.lessonRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get all lessons", zap.Error(err))
		return nil, fmt.Errorf("failed to get lessons: %w", err)
	}

	return s.loadGraphs(ctx, lessons)
}

// GetLesson retrieves one lesson with its scenes and their attachments.
//
// models.ErrLessonNotFound is returned (possibly wrapped) when the lesson doesn't exist.
func (s *lessonService) GetLesson(ctx context.Context, id int) (*models.LessonGraph, error) {
	if id <= 0 {
		return nil, models.ErrLessonNotFound
	}

	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	graphs, err := s.loadGraphs(ctx, []models.Lesson{*lesson})
	if err != nil {
		return nil, err
	}

	return &graphs[0], nil
}

// loadGraphs fetches scenes for all lessons at once and then every attachment kind for all scenes at once.
// Attachment kinds are fetched in parallel.
func (s *lessonService) loadGraphs(ctx context.Context, lessons []models.Lesson) ([]models.LessonGraph, error) {
	graphs := make([]models.LessonGraph, len(lessons))
	if len(lessons) == 0 {
		return graphs, nil
	}

	lessonIDs := make([]int, len(lessons))
	for i, lesson := range lessons {
		lessonIDs[i] = lesson.ID
	}

	scenes, err := s.sceneRepo.GetByLessonIDs(ctx, lessonIDs)
	if err != nil {
		s.logger.Error("failed to get lesson scenes", zap.Error(err))
		return nil, fmt.Errorf("failed to get lesson scenes: %w", err)
	}

	sceneIDs := make([]int, len(scenes))
	for i, scene := range scenes {
		sceneIDs[i] = scene.ID
	}

	media := make([][]models.Media, len(models.MediaKinds))
	if len(sceneIDs) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		for i, kind := range models.MediaKinds {
			g.Go(func() error {
				items, err := s.mediaRepo.GetBySceneIDs(gctx, kind, sceneIDs)
				if err != nil {
					return fmt.Errorf("failed to get %s attachments: %w", kind, err)
				}
				media[i] = items
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			s.logger.Error("failed to get scene attachments", zap.Error(err))
			return nil, err
		}
	}

	audioByScene := groupBySceneID(media[0])
	imagesByScene := groupBySceneID(media[1])
	videosByScene := groupBySceneID(media[2])

	scenesByLesson := make(map[int][]models.SceneGraph, len(lessons))
	for _, scene := range scenes {
		scenesByLesson[scene.LessonID] = append(scenesByLesson[scene.LessonID], models.SceneGraph{
			LessonScene: scene,
			AudioFiles:  nonNil(audioByScene[scene.ID]),
			Images:      nonNil(imagesByScene[scene.ID]),
			Videos:      nonNil(videosByScene[scene.ID]),
		})
	}

	for i, lesson := range lessons {
		graphs[i] = models.LessonGraph{
			Lesson: lesson,
			Scenes: nonNil(scenesByLesson[lesson.ID]),
		}
	}

	return graphs, nil
}

// groupBySceneID groups attachments by owning scene, keeping their relative order.
// Unassigned attachments are skipped.
func groupBySceneID(media []models.Media) map[int][]models.Media {
	grouped := make(map[int][]models.Media)
	for _, item := range media {
		if item.SceneID == nil {
			continue
		}
		grouped[*item.SceneID] = append(grouped[*item.SceneID], item)
	}
	return grouped
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
