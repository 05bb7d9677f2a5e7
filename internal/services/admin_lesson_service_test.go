package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kymyz/lessons/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockAdminLessonRepository is a mock implementation of AdminLessonRepository
type mockAdminLessonRepository struct {
	createdLesson *models.CreateLessonRequest
	createdMedia  *models.CreateMediaRequest
	deletedID     int
	deletedCount  int64
	lessonID      int
	mediaID       int
	err           error
}

func (m *mockAdminLessonRepository) CreateWithScenes(ctx context.Context, req *models.CreateLessonRequest) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.createdLesson = req
	return m.lessonID, nil
}

func (m *mockAdminLessonRepository) CreateMedia(ctx context.Context, req *models.CreateMediaRequest) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.createdMedia = req
	return m.mediaID, nil
}

func (m *mockAdminLessonRepository) Delete(ctx context.Context, id int) error {
	if m.err != nil {
		return m.err
	}
	m.deletedID = id
	return nil
}

func (m *mockAdminLessonRepository) DeleteAll(ctx context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.deletedCount, nil
}

func newTestAdminService(repo *mockAdminLessonRepository) *adminLessonService {
	logger, _ := zap.NewDevelopment()
	return NewAdminLessonService(repo, logger)
}

func TestAdminLessonService_CreateLesson(t *testing.T) {
	validScene := models.CreateSceneRequest{Order: 1, Title: "Intro", Content: "Hola", Audio: []string{"audio/hola.mp3"}}

	tests := []struct {
		name               string
		request            models.CreateLessonRequest
		repo               *mockAdminLessonRepository
		expectedValidation bool
		expectedError      bool
		expectedDifficulty models.Difficulty
	}{
		{
			name:               "success",
			request:            models.CreateLessonRequest{Language: "Spanish", Title: "Greetings", Difficulty: models.DifficultyAdvanced, Scenes: []models.CreateSceneRequest{validScene}},
			repo:               &mockAdminLessonRepository{lessonID: 5},
			expectedDifficulty: models.DifficultyAdvanced,
		},
		{
			name:               "empty difficulty defaults to beginner",
			request:            models.CreateLessonRequest{Language: "Spanish", Title: "Greetings"},
			repo:               &mockAdminLessonRepository{lessonID: 5},
			expectedDifficulty: models.DifficultyBeginner,
		},
		{
			name:               "empty file reference and zero order allowed",
			request:            models.CreateLessonRequest{Title: "Greetings", Scenes: []models.CreateSceneRequest{{Order: 0, Title: "Intro", Images: []string{""}}}},
			repo:               &mockAdminLessonRepository{lessonID: 5},
			expectedDifficulty: models.DifficultyBeginner,
		},
		{
			name:               "invalid difficulty",
			request:            models.CreateLessonRequest{Title: "Greetings", Difficulty: "expert"},
			repo:               &mockAdminLessonRepository{},
			expectedValidation: true,
		},
		{
			name:               "duplicate scene order",
			request:            models.CreateLessonRequest{Title: "Greetings", Scenes: []models.CreateSceneRequest{validScene, validScene}},
			repo:               &mockAdminLessonRepository{},
			expectedValidation: true,
		},
		{
			name:               "negative scene order",
			request:            models.CreateLessonRequest{Title: "Greetings", Scenes: []models.CreateSceneRequest{{Order: -1, Title: "Intro"}}},
			repo:               &mockAdminLessonRepository{},
			expectedValidation: true,
		},
		{
			name:               "missing scene title",
			request:            models.CreateLessonRequest{Title: "Greetings", Scenes: []models.CreateSceneRequest{{Order: 1, Title: "  "}}},
			repo:               &mockAdminLessonRepository{},
			expectedValidation: true,
		},
		{
			name:               "disallowed extension",
			request:            models.CreateLessonRequest{Title: "Greetings", Scenes: []models.CreateSceneRequest{{Order: 1, Title: "Intro", Videos: []string{"videos/clip.exe"}}}},
			repo:               &mockAdminLessonRepository{},
			expectedValidation: true,
		},
		{
			name:               "audio file in image slot",
			request:            models.CreateLessonRequest{Title: "Greetings", Scenes: []models.CreateSceneRequest{{Order: 1, Title: "Intro", Images: []string{"audio/hola.mp3"}}}},
			repo:               &mockAdminLessonRepository{},
			expectedValidation: true,
		},
		{
			name:               "language too long",
			request:            models.CreateLessonRequest{Title: "Greetings", Language: strings.Repeat("я", models.MaxLanguageLength+1)},
			repo:               &mockAdminLessonRepository{},
			expectedValidation: true,
		},
		{
			name:               "title too long",
			request:            models.CreateLessonRequest{Title: strings.Repeat("a", models.MaxTitleLength+1)},
			repo:               &mockAdminLessonRepository{},
			expectedValidation: true,
		},
		{
			name:          "repository error",
			request:       models.CreateLessonRequest{Title: "Greetings"},
			repo:          &mockAdminLessonRepository{err: errors.New("database error")},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAdminService(tt.repo)
			request := tt.request

			id, err := svc.CreateLesson(context.Background(), &request)

			switch {
			case tt.expectedValidation:
				assert.ErrorIs(t, err, models.ErrValidation)
				assert.Zero(t, id)
				assert.Nil(t, tt.repo.createdLesson)
			case tt.expectedError:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, models.ErrValidation)
				assert.Zero(t, id)
			default:
				require.NoError(t, err)
				assert.Equal(t, 5, id)
				require.NotNil(t, tt.repo.createdLesson)
				assert.Equal(t, tt.expectedDifficulty, tt.repo.createdLesson.Difficulty)
			}
		})
	}
}

func TestAdminLessonService_CreateUnassignedMedia(t *testing.T) {
	repo := &mockAdminLessonRepository{mediaID: 9}
	svc := newTestAdminService(repo)

	id, err := svc.CreateUnassignedMedia(context.Background(), models.MediaKindImage, "images/unsorted.JPG")
	require.NoError(t, err)
	assert.Equal(t, 9, id)
	require.NotNil(t, repo.createdMedia)
	assert.Nil(t, repo.createdMedia.SceneID)
	assert.Equal(t, models.MediaKindImage, repo.createdMedia.Kind)

	_, err = svc.CreateUnassignedMedia(context.Background(), "document", "docs/a.pdf")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.CreateUnassignedMedia(context.Background(), models.MediaKindAudio, "audio/noext")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestAdminLessonService_DeleteLesson(t *testing.T) {
	repo := &mockAdminLessonRepository{}
	svc := newTestAdminService(repo)

	require.NoError(t, svc.DeleteLesson(context.Background(), 3))
	assert.Equal(t, 3, repo.deletedID)

	assert.ErrorIs(t, svc.DeleteLesson(context.Background(), 0), models.ErrLessonNotFound)

	failing := newTestAdminService(&mockAdminLessonRepository{err: models.ErrLessonNotFound})
	assert.ErrorIs(t, failing.DeleteLesson(context.Background(), 3), models.ErrLessonNotFound)
}

func TestAdminLessonService_DeleteAllLessons(t *testing.T) {
	svc := newTestAdminService(&mockAdminLessonRepository{deletedCount: 4})

	count, err := svc.DeleteAllLessons(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	failing := newTestAdminService(&mockAdminLessonRepository{err: errors.New("database error")})
	_, err = failing.DeleteAllLessons(context.Background())
	assert.Error(t, err)
}
