package postgres

import (
	"context"
	"database/sql"
	"errors"

	"aaaquest/internal/domain"

	"github.com/jmoiron/sqlx"
)

// AttemptRepo implements repository.AttemptRepository
type AttemptRepo struct {
	db      *sqlx.DB
	initial int
}

// NewAttemptRepo creates a new attempt repository. New users start with initial attempts.
func NewAttemptRepo(db *sqlx.DB, initial int) *AttemptRepo {
	return &AttemptRepo{db: db, initial: initial}
}

// Remaining returns how many analyses the user has left
func (r *AttemptRepo) Remaining(ctx context.Context, userID string) (int, error) {
	var remaining int
	query := `
		INSERT INTO checker_attempts (user_id, remaining)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING remaining
	`
	err := r.db.QueryRowContext(ctx, query, userID, r.initial).Scan(&remaining)
	return remaining, err
}

// Consume takes one attempt and returns what is left. The counter never goes below zero.
func (r *AttemptRepo) Consume(ctx context.Context, userID string) (int, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO checker_attempts (user_id, remaining)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`, userID, r.initial)
	if err != nil {
		return 0, err
	}

	var remaining int
	query := `
		UPDATE checker_attempts
		SET remaining = remaining - 1
		WHERE user_id = $1 AND remaining > 0
		RETURNING remaining
	`
	err = r.db.QueryRowContext(ctx, query, userID).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNoAttemptsLeft
	}
	if err != nil {
		return 0, err
	}

	return remaining, nil
}
