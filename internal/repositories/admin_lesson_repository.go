package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/kymyz/lessons/internal/models"
	"go.uber.org/zap"
)

// mysqlDuplicateEntry is the MySQL error number for a violated unique key
const mysqlDuplicateEntry = 1062

type adminLessonRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAdminLessonRepository creates a new repository for administrative lesson writes
func NewAdminLessonRepository(db *sql.DB, logger *zap.Logger) *adminLessonRepository {
	return &adminLessonRepository{
		db:     db,
		logger: logger,
	}
}

// CreateWithScenes inserts a lesson, its scenes and their attachments in one transaction
// and returns the ID of the new lesson.
func (r *adminLessonRepository) CreateWithScenes(ctx context.Context, req *models.CreateLessonRequest) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"INSERT INTO lessons (language, title, difficulty) VALUES (?, ?, ?)",
		req.Language, req.Title, req.Difficulty,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create lesson: %w", err)
	}
	lessonID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get lesson id: %w", err)
	}

	for _, scene := range req.Scenes {
		result, err := tx.ExecContext(ctx,
			"INSERT INTO lesson_scenes (lesson_id, `order`, title, content) VALUES (?, ?, ?, ?)",
			lessonID, scene.Order, scene.Title, scene.Content,
		)
		if err != nil {
			if isDuplicateEntry(err) {
				return 0, fmt.Errorf("%w: scene order %d is already used in lesson", models.ErrValidation, scene.Order)
			}
			return 0, fmt.Errorf("failed to create lesson scene: %w", err)
		}
		sceneID, err := result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get lesson scene id: %w", err)
		}

		files := map[models.MediaKind][]string{
			models.MediaKindAudio: scene.Audio,
			models.MediaKindImage: scene.Images,
			models.MediaKindVideo: scene.Videos,
		}
		for _, kind := range models.MediaKinds {
			for _, file := range files[kind] {
				if _, err := insertMedia(ctx, tx, kind, &sceneID, file); err != nil {
					return 0, err
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return int(lessonID), nil
}

// CreateMedia inserts a single attachment, optionally assigned to a scene
func (r *adminLessonRepository) CreateMedia(ctx context.Context, req *models.CreateMediaRequest) (int, error) {
	var sceneID *int64
	if req.SceneID != nil {
		id := int64(*req.SceneID)
		sceneID = &id
	}
	id, err := insertMedia(ctx, r.db, req.Kind, sceneID, req.File)
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

// Delete removes a lesson. Scenes and attachments are removed by the cascading foreign keys.
func (r *adminLessonRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM lessons WHERE id = ?", id)
	if err != nil {
		r.logger.Error("failed to delete lesson", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrLessonNotFound
	}

	return nil
}

// DeleteAll removes every lesson together with its content and returns the number of deleted lessons
func (r *adminLessonRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM lessons")
	if err != nil {
		r.logger.Error("failed to delete lessons", zap.Error(err))
		return 0, fmt.Errorf("failed to delete lessons: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertMedia(ctx context.Context, db execer, kind models.MediaKind, sceneID *int64, file string) (int64, error) {
	if !kind.IsValid() {
		return 0, fmt.Errorf("invalid media kind: %s", kind)
	}

	var fileArg any
	if file != "" {
		fileArg = file
	}
	var sceneArg any
	if sceneID != nil {
		sceneArg = *sceneID
	}

	query := fmt.Sprintf("INSERT INTO %s (scene_id, %s) VALUES (?, ?)", kind.TableName(), kind.FileColumn())
	result, err := db.ExecContext(ctx, query, sceneArg, fileArg)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", kind.TableName(), err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get %s id: %w", kind.TableName(), err)
	}
	return id, nil
}

// isDuplicateEntry reports whether err is a MySQL unique key violation
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
