package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"aaaquest/internal/domain"
	"aaaquest/internal/repository"

	"go.uber.org/zap"
)

const minPasswordLength = 6

// AuthService handles sign-in lookups and profile updates
type AuthService struct {
	provider AuthProvider
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(provider AuthProvider, userRepo repository.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		provider: provider,
		userRepo: userRepo,
		logger:   logger,
	}
}

// CheckUser reports whether an account exists for the email
func (s *AuthService) CheckUser(ctx context.Context, email string) (*domain.AuthLookup, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	user, err := s.provider.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return &domain.AuthLookup{Exists: false}, nil
	}

	return &domain.AuthLookup{
		Exists:         true,
		Provider:       user.Provider(),
		FullName:       user.FullName(),
		EmailConfirmed: user.EmailConfirmedAt != nil,
	}, nil
}

// Authenticate resolves the user behind an access token and syncs the users table
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	authUser, err := s.provider.GetUser(ctx, token)
	if err != nil {
		return nil, err
	}

	user := authUser.ToUser()
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		// The profile row is a mirror; sign-in still succeeds without it
		s.logger.Warn("Failed to sync user profile", zap.String("user_id", user.ID), zap.Error(err))
	}

	return user, nil
}

// UpdateProfile changes email, password or full name of the token's owner
func (s *AuthService) UpdateProfile(ctx context.Context, token string, patch domain.UserPatch) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	patch.FullName = strings.TrimSpace(patch.FullName)
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}
	if patch.Email != "" {
		email, err := normalizeEmail(patch.Email)
		if err != nil {
			return nil, err
		}
		patch.Email = email
	}
	if patch.Password != "" && len(patch.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}

	authUser, err := s.provider.GetUser(ctx, token)
	if err != nil {
		return nil, err
	}

	updated, err := s.provider.UpdateUser(ctx, authUser.ID, patch)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateProfile(ctx, authUser.ID, patch); err != nil {
		s.logger.Warn("Failed to mirror profile update", zap.String("user_id", authUser.ID), zap.Error(err))
	}

	s.logger.Info("Profile updated",
		zap.String("user_id", authUser.ID),
		zap.Bool("email", patch.Email != ""),
		zap.Bool("password", patch.Password != ""),
		zap.Bool("full_name", patch.FullName != ""),
	)

	return updated.ToUser(), nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: invalid email", domain.ErrInvalidInput)
	}
	return email, nil
}
