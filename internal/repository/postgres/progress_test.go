package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"aaaquest/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestProgressRepo_GetProgress(t *testing.T) {
	at := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		levelRows       *sqlmock.Rows
		historyRows     *sqlmock.Rows
		expectedMax     int
		expectedHistory []domain.ScoreEntry
	}{
		{
			name:            "new learner",
			levelRows:       sqlmock.NewRows([]string{"max_level"}),
			historyRows:     sqlmock.NewRows([]string{"level_id", "score", "total", "created_at"}),
			expectedMax:     1,
			expectedHistory: []domain.ScoreEntry{},
		},
		{
			name:      "learner with history",
			levelRows: sqlmock.NewRows([]string{"max_level"}).AddRow(2),
			historyRows: sqlmock.NewRows([]string{"level_id", "score", "total", "created_at"}).
				AddRow(1, 1, 3, at).
				AddRow(1, 3, 3, at),
			expectedMax: 2,
			expectedHistory: []domain.ScoreEntry{
				{LevelID: 1, Score: 1, Total: 3, Timestamp: at},
				{LevelID: 1, Score: 3, Total: 3, Timestamp: at},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewProgressRepo(db)

			mock.ExpectQuery("SELECT max_level FROM user_progress").WithArgs("u-1").WillReturnRows(tt.levelRows)
			mock.ExpectQuery("SELECT level_id, score, total, created_at").WithArgs("u-1").WillReturnRows(tt.historyRows)

			progress, err := repo.GetProgress(context.Background(), "u-1")

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedMax, progress.MaxLevel)
			assert.Equal(t, tt.expectedHistory, progress.History)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProgressRepo_GetProgress_DatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProgressRepo(db)

	mock.ExpectQuery("SELECT max_level FROM user_progress").WithArgs("u-1").WillReturnError(fmt.Errorf("db error"))

	progress, err := repo.GetProgress(context.Background(), "u-1")

	assert.Error(t, err)
	assert.Nil(t, progress)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepo_RecordQuizResult(t *testing.T) {
	at := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	entry := domain.ScoreEntry{LevelID: 1, Score: 3, Total: 3, Timestamp: at}

	t.Run("commits quiz, score and level together", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProgressRepo(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE quizzes").
			WithArgs("q-1", at).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO score_history").
			WithArgs("u-1", 1, 3, 3, at).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO user_progress").
			WithArgs("u-1", 2).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := repo.RecordQuizResult(context.Background(), "q-1", "u-1", entry, 2)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already submitted quiz writes nothing", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProgressRepo(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE quizzes").
			WithArgs("q-1", at).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.RecordQuizResult(context.Background(), "q-1", "u-1", entry, 2)

		assert.ErrorIs(t, err, domain.ErrQuizSubmitted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed score insert reopens the quiz", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProgressRepo(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE quizzes").
			WithArgs("q-1", at).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO score_history").
			WillReturnError(fmt.Errorf("db error"))
		mock.ExpectRollback()

		err := repo.RecordQuizResult(context.Background(), "q-1", "u-1", entry, 2)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed level update reopens the quiz", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProgressRepo(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE quizzes").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO score_history").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO user_progress").
			WillReturnError(fmt.Errorf("db error"))
		mock.ExpectRollback()

		err := repo.RecordQuizResult(context.Background(), "q-1", "u-1", entry, 2)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
