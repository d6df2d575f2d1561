package service

import (
	"context"
	"time"

	"aaaquest/internal/repository"

	"go.uber.org/zap"
)

// Unanswered quizzes are dropped after this long
const quizTTL = 24 * time.Hour

// StatsService handles cleanup of stale data
type StatsService struct {
	quizRepo     repository.QuizRepository
	analysisRepo repository.AnalysisRepository
	retention    time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

// NewStatsService creates a new stats service
func NewStatsService(
	quizRepo repository.QuizRepository,
	analysisRepo repository.AnalysisRepository,
	retention time.Duration,
	logger *zap.Logger,
) *StatsService {
	return &StatsService{
		quizRepo:     quizRepo,
		analysisRepo: analysisRepo,
		retention:    retention,
		logger:       logger,
		now:          time.Now,
	}
}

// CleanupOldData removes unanswered quizzes and analyses past retention
func (s *StatsService) CleanupOldData(ctx context.Context) error {
	now := s.now().UTC()

	s.logger.Info("Starting cleanup of old data", zap.Duration("retention", s.retention))

	quizzes, err := s.quizRepo.DeleteStale(ctx, now.Add(-quizTTL))
	if err != nil {
		s.logger.Error("Failed to cleanup stale quizzes", zap.Error(err))
		return err
	}

	analyses, err := s.analysisRepo.DeleteOlderThan(ctx, now.Add(-s.retention))
	if err != nil {
		s.logger.Error("Failed to cleanup old analyses", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully",
		zap.Int64("quizzes_deleted", quizzes),
		zap.Int64("analyses_deleted", analyses),
	)
	return nil
}
