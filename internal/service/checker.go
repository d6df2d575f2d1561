package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"aaaquest/internal/domain"
	"aaaquest/internal/report"
	"aaaquest/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxImageSize is the largest screenshot the checker accepts
const MaxImageSize = 5 << 20

// AttemptsUnknown is returned by Analyze when no attempt was spent
const AttemptsUnknown = -1

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// CheckerService runs AI accessibility audits behind an attempt limit
type CheckerService struct {
	attemptRepo  repository.AttemptRepository
	analysisRepo repository.AnalysisRepository
	analyzer     ImageAnalyzer
	logger       *zap.Logger
	now          func() time.Time
}

// NewCheckerService creates a new checker service
func NewCheckerService(
	attemptRepo repository.AttemptRepository,
	analysisRepo repository.AnalysisRepository,
	analyzer ImageAnalyzer,
	logger *zap.Logger,
) *CheckerService {
	return &CheckerService{
		attemptRepo:  attemptRepo,
		analysisRepo: analysisRepo,
		analyzer:     analyzer,
		logger:       logger,
		now:          time.Now,
	}
}

// Attempts returns how many analyses the user has left
func (s *CheckerService) Attempts(ctx context.Context, userID string) (int, error) {
	return s.attemptRepo.Remaining(ctx, userID)
}

// Analyze spends one attempt and audits the image. The attempt is spent even if the model call fails.
// remaining is AttemptsUnknown whenever the error came before an attempt was consumed.
func (s *CheckerService) Analyze(ctx context.Context, userID string, image []byte) (*domain.Analysis, int, error) {
	if len(image) == 0 {
		return nil, AttemptsUnknown, fmt.Errorf("%w: image is required", domain.ErrInvalidInput)
	}
	if len(image) > MaxImageSize {
		return nil, AttemptsUnknown, fmt.Errorf("%w: image is larger than %d MiB", domain.ErrInvalidInput, MaxImageSize>>20)
	}

	mime := http.DetectContentType(image)
	if !allowedImageTypes[mime] {
		return nil, AttemptsUnknown, fmt.Errorf("%w: unsupported image type %s", domain.ErrInvalidInput, mime)
	}

	remaining, err := s.attemptRepo.Consume(ctx, userID)
	if err != nil {
		return nil, AttemptsUnknown, err
	}

	analysis, err := s.analyzer.AnalyzeImage(ctx, image, mime)
	if err != nil {
		s.logger.Error("Image analysis failed",
			zap.String("user_id", userID),
			zap.Int("remaining", remaining),
			zap.Error(err),
		)
		return nil, remaining, err
	}

	analysis.Normalize()
	analysis.ID = uuid.NewString()
	analysis.UserID = userID
	analysis.ImageMIME = mime
	analysis.CreatedAt = s.now().UTC()

	if err := s.analysisRepo.Save(ctx, analysis, image); err != nil {
		return nil, remaining, err
	}

	s.logger.Info("Image analysed",
		zap.String("user_id", userID),
		zap.String("analysis_id", analysis.ID),
		zap.Int("findings", len(analysis.Annotations)),
		zap.Int("remaining", remaining),
	)

	return analysis, remaining, nil
}

// Report renders a stored analysis owned by the user as PDF
func (s *CheckerService) Report(ctx context.Context, userID, analysisID string) ([]byte, error) {
	if _, err := uuid.Parse(analysisID); err != nil {
		return nil, domain.ErrNotFound
	}

	analysis, image, err := s.analysisRepo.Get(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	if analysis == nil || analysis.UserID != userID {
		return nil, domain.ErrNotFound
	}

	return report.CheckerPDF(analysis, image)
}
