package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"aaaquest/internal/domain"

	"github.com/jmoiron/sqlx"
)

// LessonRepo implements repository.LessonRepository
type LessonRepo struct {
	db *sqlx.DB
}

// NewLessonRepo creates a new lesson repository
func NewLessonRepo(db *sqlx.DB) *LessonRepo {
	return &LessonRepo{db: db}
}

// GetLesson returns the cached lesson or nil
func (r *LessonRepo) GetLesson(ctx context.Context, userID string, levelID int) (*domain.StudyLesson, error) {
	var content []byte
	query := `SELECT content FROM lessons WHERE user_id = $1 AND level_id = $2`
	err := r.db.QueryRowContext(ctx, query, userID, levelID).Scan(&content)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var lesson domain.StudyLesson
	if err := json.Unmarshal(content, &lesson); err != nil {
		return nil, err
	}
	return &lesson, nil
}

// SaveLesson caches a lesson, replacing any previous one for the level
func (r *LessonRepo) SaveLesson(ctx context.Context, userID string, lesson *domain.StudyLesson) error {
	content, err := json.Marshal(lesson)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO lessons (user_id, level_id, content, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, level_id)
		DO UPDATE SET content = EXCLUDED.content, created_at = NOW()
	`
	_, err = r.db.ExecContext(ctx, query, userID, lesson.LevelID, content)
	return err
}

// ListLessons returns every cached lesson of the user keyed by level
func (r *LessonRepo) ListLessons(ctx context.Context, userID string) (map[int]domain.StudyLesson, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT level_id, content FROM lessons WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lessons := make(map[int]domain.StudyLesson)
	for rows.Next() {
		var levelID int
		var content []byte
		if err := rows.Scan(&levelID, &content); err != nil {
			return nil, err
		}
		var lesson domain.StudyLesson
		if err := json.Unmarshal(content, &lesson); err != nil {
			return nil, err
		}
		lessons[levelID] = lesson
	}

	return lessons, rows.Err()
}
