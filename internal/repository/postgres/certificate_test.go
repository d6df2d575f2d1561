package postgres

import (
	"context"
	"testing"
	"time"

	"aaaquest/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCertificateRepo_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCertificateRepo(db)

	issued := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	cert := &domain.Certificate{ID: "c-1", UserID: "u-1", FullName: "Ada Lovelace", IssuedAt: issued}

	mock.ExpectExec("INSERT INTO certificates").
		WithArgs("c-1", "u-1", "Ada Lovelace", issued).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Save(context.Background(), cert)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCertificateRepo_GetByUser(t *testing.T) {
	issued := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	columns := []string{"id", "user_id", "full_name", "issued_at"}

	tests := []struct {
		name     string
		rows     *sqlmock.Rows
		expected *domain.Certificate
	}{
		{
			name:     "issued",
			rows:     sqlmock.NewRows(columns).AddRow("c-1", "u-1", "Ada", issued),
			expected: &domain.Certificate{ID: "c-1", UserID: "u-1", FullName: "Ada", IssuedAt: issued},
		},
		{
			name:     "not issued",
			rows:     sqlmock.NewRows(columns),
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewCertificateRepo(db)

			mock.ExpectQuery("FROM certificates WHERE user_id = \\$1").
				WithArgs("u-1").
				WillReturnRows(tt.rows)

			cert, err := repo.GetByUser(context.Background(), "u-1")

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, cert)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
