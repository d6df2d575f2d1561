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

// AnalysisRepo implements repository.AnalysisRepository
type AnalysisRepo struct {
	db *sqlx.DB
}

// NewAnalysisRepo creates a new analysis repository
func NewAnalysisRepo(db *sqlx.DB) *AnalysisRepo {
	return &AnalysisRepo{db: db}
}

// Save stores the analysis together with the analysed image
func (r *AnalysisRepo) Save(ctx context.Context, analysis *domain.Analysis, image []byte) error {
	annotations, err := json.Marshal(analysis.Annotations)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO analyses (id, user_id, summary, score, annotations, image, image_mime, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.ExecContext(ctx, query,
		analysis.ID, analysis.UserID, analysis.Summary, analysis.Score,
		annotations, image, analysis.ImageMIME, analysis.CreatedAt,
	)
	return err
}

// Get returns the analysis and its image, or nil if absent
func (r *AnalysisRepo) Get(ctx context.Context, id string) (*domain.Analysis, []byte, error) {
	var a domain.Analysis
	var annotations, image []byte
	query := `
		SELECT id, user_id, summary, score, annotations, image, image_mime, created_at
		FROM analyses
		WHERE id = $1
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.UserID, &a.Summary, &a.Score, &annotations, &image, &a.ImageMIME, &a.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	if err := json.Unmarshal(annotations, &a.Annotations); err != nil {
		return nil, nil, err
	}

	return &a, image, nil
}

// DeleteOlderThan removes analyses created before the cutoff
func (r *AnalysisRepo) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM analyses WHERE created_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
