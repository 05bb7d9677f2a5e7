package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kymyz/lessons/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockLessonRepository is a mock implementation of LessonRepository
type mockLessonRepository struct {
	lessons []models.Lesson
	lesson  *models.Lesson
	err     error
}

func (m *mockLessonRepository) GetAll(ctx context.Context) ([]models.Lesson, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.lessons, nil
}

func (m *mockLessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.lesson == nil {
		return nil, models.ErrLessonNotFound
	}
	return m.lesson, nil
}

// mockSceneRepository is a mock implementation of LessonSceneRepository
type mockSceneRepository struct {
	scenes []models.LessonScene
	err    error
	calls  [][]int
}

func (m *mockSceneRepository) GetByLessonIDs(ctx context.Context, lessonIDs []int) ([]models.LessonScene, error) {
	m.calls = append(m.calls, lessonIDs)
	if m.err != nil {
		return nil, m.err
	}
	return m.scenes, nil
}

// mockMediaRepository is a mock implementation of MediaRepository
type mockMediaRepository struct {
	mu    sync.Mutex
	media map[models.MediaKind][]models.Media
	errs  map[models.MediaKind]error
	calls map[models.MediaKind][]int
}

func (m *mockMediaRepository) GetBySceneIDs(ctx context.Context, kind models.MediaKind, sceneIDs []int) ([]models.Media, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[models.MediaKind][]int)
	}
	m.calls[kind] = sceneIDs
	if err := m.errs[kind]; err != nil {
		return nil, err
	}
	return m.media[kind], nil
}

func file(ref string) *string {
	return &ref
}

func scene(id int) *int {
	return &id
}

func newTestLessonService(lessons *mockLessonRepository, scenes *mockSceneRepository, media *mockMediaRepository) *lessonService {
	logger, _ := zap.NewDevelopment()
	return NewLessonService(lessons, scenes, media, logger)
}

func TestNewLessonService(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	lessonRepo := &mockLessonRepository{}
	sceneRepo := &mockSceneRepository{}
	mediaRepo := &mockMediaRepository{}

	svc := NewLessonService(lessonRepo, sceneRepo, mediaRepo, logger)

	assert.NotNil(t, svc)
	assert.Equal(t, lessonRepo, svc.lessonRepo)
	assert.Equal(t, sceneRepo, svc.sceneRepo)
	assert.Equal(t, mediaRepo, svc.mediaRepo)
	assert.Equal(t, logger, svc.logger)
}

func TestLessonService_ListLessons(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	lessons := []models.Lesson{
		{ID: 2, Title: "Market", Language: "English", Difficulty: models.DifficultyIntermediate, CreatedAt: now, UpdatedAt: now},
		{ID: 1, Title: "Greetings", Language: "Spanish", Difficulty: models.DifficultyBeginner, CreatedAt: now.Add(-time.Hour), UpdatedAt: now},
	}
	scenes := []models.LessonScene{
		{ID: 10, LessonID: 1, Order: 1, Title: "Intro", Content: "Hola"},
		{ID: 11, LessonID: 1, Order: 2, Title: "Goodbye", Content: "Adiós"},
	}

	t.Run("assembles graphs with batched reads", func(t *testing.T) {
		sceneRepo := &mockSceneRepository{scenes: scenes}
		mediaRepo := &mockMediaRepository{media: map[models.MediaKind][]models.Media{
			models.MediaKindAudio: {
				{ID: 4, SceneID: scene(11), File: file("audio/adios.mp3")},
				{ID: 3, SceneID: scene(10), File: file("audio/hola-2.mp3")},
				{ID: 2, SceneID: scene(10), File: file("audio/hola.mp3")},
			},
			models.MediaKindImage: {
				{ID: 9, SceneID: scene(11), File: file("images/wave.png")},
			},
		}}
		svc := newTestLessonService(&mockLessonRepository{lessons: lessons}, sceneRepo, mediaRepo)

		result, err := svc.ListLessons(context.Background())

		require.NoError(t, err)
		require.Len(t, result, 2)

		// Lesson order comes from the repository
		assert.Equal(t, 2, result[0].ID)
		assert.Equal(t, 1, result[1].ID)
		assert.NotNil(t, result[0].Scenes)
		assert.Empty(t, result[0].Scenes)

		greetings := result[1]
		require.Len(t, greetings.Scenes, 2)
		assert.Equal(t, 1, greetings.Scenes[0].Order)
		assert.Equal(t, 2, greetings.Scenes[1].Order)

		intro := greetings.Scenes[0]
		require.Len(t, intro.AudioFiles, 2)
		assert.Equal(t, 3, intro.AudioFiles[0].ID)
		assert.Equal(t, 2, intro.AudioFiles[1].ID)
		assert.NotNil(t, intro.Images)
		assert.Empty(t, intro.Images)
		assert.NotNil(t, intro.Videos)
		assert.Empty(t, intro.Videos)

		goodbye := greetings.Scenes[1]
		assert.Len(t, goodbye.AudioFiles, 1)
		assert.Len(t, goodbye.Images, 1)

		// One read per level covering every parent
		assert.Equal(t, [][]int{{2, 1}}, sceneRepo.calls)
		assert.Len(t, mediaRepo.calls, 3)
		for _, kind := range models.MediaKinds {
			assert.Equal(t, []int{10, 11}, mediaRepo.calls[kind])
		}
	})

	t.Run("skips unassigned attachments", func(t *testing.T) {
		mediaRepo := &mockMediaRepository{media: map[models.MediaKind][]models.Media{
			models.MediaKindVideo: {
				{ID: 5, File: file("videos/orphan.mp4")},
				{ID: 4, SceneID: scene(10), File: file("videos/intro.mp4")},
			},
		}}
		svc := newTestLessonService(&mockLessonRepository{lessons: lessons[1:]}, &mockSceneRepository{scenes: scenes[:1]}, mediaRepo)

		result, err := svc.ListLessons(context.Background())

		require.NoError(t, err)
		require.Len(t, result[0].Scenes[0].Videos, 1)
		assert.Equal(t, 4, result[0].Scenes[0].Videos[0].ID)
	})

	t.Run("no lessons", func(t *testing.T) {
		sceneRepo := &mockSceneRepository{}
		mediaRepo := &mockMediaRepository{}
		svc := newTestLessonService(&mockLessonRepository{lessons: []models.Lesson{}}, sceneRepo, mediaRepo)

		result, err := svc.ListLessons(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
		assert.Empty(t, sceneRepo.calls)
		assert.Empty(t, mediaRepo.calls)
	})

	t.Run("no scenes skips attachment reads", func(t *testing.T) {
		mediaRepo := &mockMediaRepository{}
		svc := newTestLessonService(&mockLessonRepository{lessons: lessons}, &mockSceneRepository{scenes: []models.LessonScene{}}, mediaRepo)

		result, err := svc.ListLessons(context.Background())

		require.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Empty(t, mediaRepo.calls)
	})

	t.Run("lesson repository error", func(t *testing.T) {
		svc := newTestLessonService(&mockLessonRepository{err: errors.New("connection refused")}, &mockSceneRepository{}, &mockMediaRepository{})

		result, err := svc.ListLessons(context.Background())

		assert.ErrorContains(t, err, "connection refused")
		assert.Nil(t, result)
	})

	t.Run("scene repository error", func(t *testing.T) {
		svc := newTestLessonService(&mockLessonRepository{lessons: lessons}, &mockSceneRepository{err: errors.New("timeout")}, &mockMediaRepository{})

		result, err := svc.ListLessons(context.Background())

		assert.ErrorContains(t, err, "failed to get lesson scenes")
		assert.Nil(t, result)
	})

	t.Run("media repository error", func(t *testing.T) {
		mediaErr := errors.New("images table unavailable")
		mediaRepo := &mockMediaRepository{errs: map[models.MediaKind]error{models.MediaKindImage: mediaErr}}
		svc := newTestLessonService(&mockLessonRepository{lessons: lessons}, &mockSceneRepository{scenes: scenes}, mediaRepo)

		result, err := svc.ListLessons(context.Background())

		assert.ErrorIs(t, err, mediaErr)
		assert.Nil(t, result)
	})
}

func TestLessonService_GetLesson(t *testing.T) {
	lesson := &models.Lesson{ID: 1, Title: "Greetings", Language: "Spanish", Difficulty: models.DifficultyBeginner}

	tests := []struct {
		name          string
		id            int
		lessonRepo    *mockLessonRepository
		sceneRepo     *mockSceneRepository
		expectedError error
		errorContains string
	}{
		{
			name:       "success",
			id:         1,
			lessonRepo: &mockLessonRepository{lesson: lesson},
			sceneRepo: &mockSceneRepository{scenes: []models.LessonScene{
				{ID: 10, LessonID: 1, Order: 1, Title: "Intro", Content: "Hola"},
			}},
		},
		{
			name:          "not found",
			id:            42,
			lessonRepo:    &mockLessonRepository{},
			sceneRepo:     &mockSceneRepository{},
			expectedError: models.ErrLessonNotFound,
		},
		{
			name:          "zero id",
			id:            0,
			lessonRepo:    &mockLessonRepository{lesson: lesson},
			sceneRepo:     &mockSceneRepository{},
			expectedError: models.ErrLessonNotFound,
		},
		{
			name:          "negative id",
			id:            -1,
			lessonRepo:    &mockLessonRepository{lesson: lesson},
			sceneRepo:     &mockSceneRepository{},
			expectedError: models.ErrLessonNotFound,
		},
		{
			name:          "storage error",
			id:            1,
			lessonRepo:    &mockLessonRepository{err: errors.New("connection refused")},
			sceneRepo:     &mockSceneRepository{},
			errorContains: "connection refused",
		},
		{
			name:          "scene storage error returns no partial graph",
			id:            1,
			lessonRepo:    &mockLessonRepository{lesson: lesson},
			sceneRepo:     &mockSceneRepository{err: errors.New("timeout")},
			errorContains: "timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mediaRepo := &mockMediaRepository{media: map[models.MediaKind][]models.Media{
				models.MediaKindAudio: {{ID: 1, SceneID: scene(10), File: file("audio/hola.mp3")}},
			}}
			svc := newTestLessonService(tt.lessonRepo, tt.sceneRepo, mediaRepo)

			result, err := svc.GetLesson(context.Background(), tt.id)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			case tt.errorContains != "":
				assert.ErrorContains(t, err, tt.errorContains)
				assert.NotErrorIs(t, err, models.ErrLessonNotFound)
				assert.Nil(t, result)
			default:
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, "Greetings", result.Title)
				require.Len(t, result.Scenes, 1)
				require.Len(t, result.Scenes[0].AudioFiles, 1)
				assert.Equal(t, "audio/hola.mp3", *result.Scenes[0].AudioFiles[0].File)
				assert.Equal(t, [][]int{{1}}, tt.sceneRepo.calls)
			}
		})
	}
}
