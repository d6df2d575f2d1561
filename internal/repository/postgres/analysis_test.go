package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"aaaquest/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisRepo_SaveAndGet(t *testing.T) {
	created := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	analysis := &domain.Analysis{
		ID:      "a-1",
		UserID:  "u-1",
		Summary: "Low contrast button",
		Score:   72,
		Annotations: []domain.Annotation{
			{Issue: "Contrast", Criterion: "1.4.3", Severity: domain.SeverityHigh, Box: domain.Box{X: 0.1, Y: 0.1, Width: 0.2, Height: 0.1}},
		},
		ImageMIME: "image/png",
		CreatedAt: created,
	}
	image := []byte{0x89, 0x50, 0x4e, 0x47}

	db, mock := newMockDB(t)
	repo := NewAnalysisRepo(db)

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs("a-1", "u-1", analysis.Summary, 72, sqlmock.AnyArg(), image, "image/png", created).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Save(context.Background(), analysis, image))

	annotations, err := json.Marshal(analysis.Annotations)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, user_id, summary, score, annotations, image, image_mime, created_at").
		WithArgs("a-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "summary", "score", "annotations", "image", "image_mime", "created_at"}).
			AddRow("a-1", "u-1", analysis.Summary, 72, annotations, image, "image/png", created))

	got, gotImage, err := repo.Get(context.Background(), "a-1")

	assert.NoError(t, err)
	assert.Equal(t, analysis, got)
	assert.Equal(t, image, gotImage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisRepo_GetMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAnalysisRepo(db)

	mock.ExpectQuery("SELECT id, user_id, summary").
		WithArgs("a-2").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, image, err := repo.Get(context.Background(), "a-2")

	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.Nil(t, image)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisRepo_DeleteOlderThan(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAnalysisRepo(db)

	cutoff := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("DELETE FROM analyses").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.DeleteOlderThan(context.Background(), cutoff)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
