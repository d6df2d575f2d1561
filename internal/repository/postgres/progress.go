package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aaaquest/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ProgressRepo implements repository.ProgressRepository
type ProgressRepo struct {
	db *sqlx.DB
}

// NewProgressRepo creates a new progress repository
func NewProgressRepo(db *sqlx.DB) *ProgressRepo {
	return &ProgressRepo{db: db}
}

// GetProgress returns max level and score history. Learners without a row start at level 1.
func (r *ProgressRepo) GetProgress(ctx context.Context, userID string) (*domain.UserProgress, error) {
	progress := domain.NewUserProgress()

	var maxLevel int
	err := r.db.GetContext(ctx, &maxLevel, `SELECT max_level FROM user_progress WHERE user_id = $1`, userID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, err
	default:
		progress.MaxLevel = maxLevel
	}

	query := `
		SELECT level_id, score, total, created_at
		FROM score_history
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`
	var history []domain.ScoreEntry
	if err := r.db.SelectContext(ctx, &history, query, userID); err != nil {
		return nil, err
	}
	if history != nil {
		progress.History = history
	}

	return progress, nil
}

// RecordQuizResult closes the quiz, appends the history entry and raises max level in one transaction.
// A quiz that is already closed yields domain.ErrQuizSubmitted. max_level is never lowered.
func (r *ProgressRepo) RecordQuizResult(ctx context.Context, quizID, userID string, entry domain.ScoreEntry, maxLevel int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE quizzes
		SET submitted_at = $2
		WHERE id = $1 AND submitted_at IS NULL
	`, quizID, entry.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to close quiz: %w", err)
	}
	closed, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if closed == 0 {
		return domain.ErrQuizSubmitted
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO score_history (user_id, level_id, score, total, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, userID, entry.LevelID, entry.Score, entry.Total, entry.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert score: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_progress (user_id, max_level, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET
			max_level = GREATEST(user_progress.max_level, EXCLUDED.max_level),
			updated_at = NOW()
	`, userID, maxLevel)
	if err != nil {
		return fmt.Errorf("failed to update max level: %w", err)
	}

	return tx.Commit()
}
