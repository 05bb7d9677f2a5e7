package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/kymyz/lessons/internal/models"
	"go.uber.org/zap"
)

type mediaRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMediaRepository creates a new repository over the audio_files, images and videos tables
func NewMediaRepository(db *sql.DB, logger *zap.Logger) *mediaRepository {
	return &mediaRepository{
		db:     db,
		logger: logger,
	}
}

// GetBySceneIDs retrieves attachments of the given kind for all given scenes, newest first.
func (r *mediaRepository) GetBySceneIDs(ctx context.Context, kind models.MediaKind, sceneIDs []int) ([]models.Media, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid media kind: %s", kind)
	}
	if len(sceneIDs) == 0 {
		return []models.Media{}, nil
	}

	// Table and column names come from the kind, never from the caller
	placeholders, args := inClause(sceneIDs)
	query := fmt.Sprintf(`
		SELECT id, scene_id, %s
		FROM %s
		WHERE scene_id IN (%s)
		ORDER BY id DESC
	`, kind.FileColumn(), kind.TableName(), placeholders)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query media", zap.Error(err), zap.String("kind", string(kind)))
		return nil, fmt.Errorf("failed to query %s: %w", kind.TableName(), err)
	}
	defer rows.Close()

	media := []models.Media{}
	for rows.Next() {
		var item models.Media
		var sceneID sql.NullInt64
		var file sql.NullString
		if err := rows.Scan(&item.ID, &sceneID, &file); err != nil {
			r.logger.Error("failed to scan media", zap.Error(err), zap.String("kind", string(kind)))
			return nil, fmt.Errorf("failed to scan %s: %w", kind.TableName(), err)
		}
		if sceneID.Valid {
			id := int(sceneID.Int64)
			item.SceneID = &id
		}
		if file.Valid && file.String != "" {
			item.File = &file.String
		}
		media = append(media, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return media, nil
}

// inClause returns "?, ?, ?" placeholders and matching arguments for an IN clause
func inClause(ids []int) (string, []any) {
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	return strings.Join(placeholders, ", "), args
}
