package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"aaaquest/internal/domain"

	"github.com/jmoiron/sqlx"
)

// QuizRepo implements repository.QuizRepository
type QuizRepo struct {
	db *sqlx.DB
}

// NewQuizRepo creates a new quiz repository
func NewQuizRepo(db *sqlx.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create stores a generated quiz
func (r *QuizRepo) Create(ctx context.Context, quiz *domain.Quiz) error {
	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO quizzes (id, user_id, level_id, questions, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.db.ExecContext(ctx, query, quiz.ID, quiz.UserID, quiz.LevelID, questions, quiz.CreatedAt)
	return err
}

// Get returns the quiz or nil
func (r *QuizRepo) Get(ctx context.Context, id string) (*domain.Quiz, error) {
	var q domain.Quiz
	var questions []byte
	var submittedAt sql.NullTime
	query := `
		SELECT id, user_id, level_id, questions, created_at, submitted_at
		FROM quizzes
		WHERE id = $1
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&q.ID, &q.UserID, &q.LevelID, &questions, &q.CreatedAt, &submittedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(questions, &q.Questions); err != nil {
		return nil, err
	}
	if submittedAt.Valid {
		q.SubmittedAt = &submittedAt.Time
	}

	return &q, nil
}

// DeleteStale removes unanswered quizzes created before the cutoff
func (r *QuizRepo) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	query := `
		DELETE FROM quizzes
		WHERE submitted_at IS NULL AND created_at < $1
	`
	res, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
