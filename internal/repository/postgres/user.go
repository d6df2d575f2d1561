package postgres

import (
	"context"
	"database/sql"
	"errors"

	"aaaquest/internal/domain"

	"github.com/jmoiron/sqlx"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Upsert inserts the user or refreshes its profile fields
func (r *UserRepo) Upsert(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, full_name, avatar_url, provider, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (id)
		DO UPDATE SET
			email = EXCLUDED.email,
			full_name = EXCLUDED.full_name,
			avatar_url = EXCLUDED.avatar_url,
			provider = EXCLUDED.provider,
			updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Email, user.FullName, user.AvatarURL, user.Provider)
	return err
}

// GetByID returns the user or nil if it does not exist
func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	query := `SELECT id, email, full_name, avatar_url, provider, updated_at FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &u, query, id)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// UpdateProfile overwrites email and full name where the patch sets them
func (r *UserRepo) UpdateProfile(ctx context.Context, id string, patch domain.UserPatch) error {
	query := `
		UPDATE users
		SET email = COALESCE(NULLIF($2, ''), email),
			full_name = COALESCE(NULLIF($3, ''), full_name),
			updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id, patch.Email, patch.FullName)
	return err
}
