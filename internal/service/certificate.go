package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aaaquest/internal/domain"
	"aaaquest/internal/report"
	"aaaquest/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxNameLength = 80

// CertificateService issues and verifies completion certificates
type CertificateService struct {
	progressRepo repository.ProgressRepository
	certRepo     repository.CertificateRepository
	userRepo     repository.UserRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewCertificateService creates a new certificate service
func NewCertificateService(
	progressRepo repository.ProgressRepository,
	certRepo repository.CertificateRepository,
	userRepo repository.UserRepository,
	logger *zap.Logger,
) *CertificateService {
	return &CertificateService{
		progressRepo: progressRepo,
		certRepo:     certRepo,
		userRepo:     userRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// Issue returns the user's certificate, creating it once every level is passed.
// An empty name falls back to the profile name.
func (s *CertificateService) Issue(ctx context.Context, userID, fullName string) (*domain.Certificate, error) {
	existing, err := s.certRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	progress, err := s.progressRepo.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !progress.Completed() {
		return nil, domain.ErrNotEligible
	}

	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user != nil {
			fullName = strings.TrimSpace(user.FullName)
		}
	}
	if fullName == "" {
		return nil, fmt.Errorf("%w: a name is required on the certificate", domain.ErrInvalidInput)
	}
	if len([]rune(fullName)) > maxNameLength {
		return nil, fmt.Errorf("%w: name is longer than %d characters", domain.ErrInvalidInput, maxNameLength)
	}

	cert := &domain.Certificate{
		ID:       uuid.NewString(),
		UserID:   userID,
		FullName: fullName,
		IssuedAt: s.now().UTC(),
	}
	if err := s.certRepo.Save(ctx, cert); err != nil {
		return nil, err
	}

	// A concurrent request may have won the insert
	stored, err := s.certRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("certificate for user %s was not stored", userID)
	}

	s.logger.Info("Certificate issued", zap.String("user_id", userID), zap.String("certificate_id", stored.ID))
	return stored, nil
}

// Get returns a certificate for public verification
func (s *CertificateService) Get(ctx context.Context, id string) (*domain.Certificate, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}

	cert, err := s.certRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, domain.ErrNotFound
	}
	return cert, nil
}

// PDF renders a certificate
func (s *CertificateService) PDF(ctx context.Context, id string) ([]byte, error) {
	cert, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return report.CertificatePDF(cert)
}
