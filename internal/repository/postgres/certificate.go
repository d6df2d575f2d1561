package postgres

import (
	"context"
	"database/sql"
	"errors"

	"aaaquest/internal/domain"

	"github.com/jmoiron/sqlx"
)

// CertificateRepo implements repository.CertificateRepository
type CertificateRepo struct {
	db *sqlx.DB
}

// NewCertificateRepo creates a new certificate repository
func NewCertificateRepo(db *sqlx.DB) *CertificateRepo {
	return &CertificateRepo{db: db}
}

// Save stores a certificate. A user keeps their first certificate.
func (r *CertificateRepo) Save(ctx context.Context, cert *domain.Certificate) error {
	query := `
		INSERT INTO certificates (id, user_id, full_name, issued_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, cert.ID, cert.UserID, cert.FullName, cert.IssuedAt)
	return err
}

// Get returns the certificate or nil
func (r *CertificateRepo) Get(ctx context.Context, id string) (*domain.Certificate, error) {
	return r.getOne(ctx, `SELECT id, user_id, full_name, issued_at FROM certificates WHERE id = $1`, id)
}

// GetByUser returns the user's certificate or nil
func (r *CertificateRepo) GetByUser(ctx context.Context, userID string) (*domain.Certificate, error) {
	return r.getOne(ctx, `SELECT id, user_id, full_name, issued_at FROM certificates WHERE user_id = $1`, userID)
}

func (r *CertificateRepo) getOne(ctx context.Context, query string, arg string) (*domain.Certificate, error) {
	var c domain.Certificate
	err := r.db.GetContext(ctx, &c, query, arg)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}
