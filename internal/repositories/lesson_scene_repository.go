package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kymyz/lessons/internal/models"
	"go.uber.org/zap"
)

type lessonSceneRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewLessonSceneRepository creates a new lesson scene repository
func NewLessonSceneRepository(db *sql.DB, logger *zap.Logger) *lessonSceneRepository {
	return &lessonSceneRepository{
		db:     db,
		logger: logger,
	}
}

// GetByLessonIDs retrieves the scenes of all given lessons with a single query,
// ordered by lesson and then by scene order.
func (r *lessonSceneRepository) GetByLessonIDs(ctx context.Context, lessonIDs []int) ([]models.LessonScene, error) {
	if len(lessonIDs) == 0 {
		return []models.LessonScene{}, nil
	}

	// The IN clause is built from placeholders so that every lesson is covered by one round trip.
	placeholders, args := inClause(lessonIDs)
	query := fmt.Sprintf(`
		SELECT id, lesson_id, `+"`order`"+`, title, content
		FROM lesson_scenes
		WHERE lesson_id IN (%s)
		ORDER BY lesson_id, `+"`order`"+`
	`, placeholders)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query lesson scenes", zap.Error(err))
		return nil, fmt.Errorf("failed to query lesson scenes: %w", err)
	}
	defer rows.Close()

	scenes := []models.LessonScene{}
	for rows.Next() {
		var scene models.LessonScene
		if err := rows.Scan(
			&scene.ID,
			&scene.LessonID,
			&scene.Order,
			&scene.Title,
			&scene.Content,
		); err != nil {
			r.logger.Error("failed to scan lesson scene", zap.Error(err))
			return nil, fmt.Errorf("failed to scan lesson scene: %w", err)
		}
		scenes = append(scenes, scene)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return scenes, nil
}
