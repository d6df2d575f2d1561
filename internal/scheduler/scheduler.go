package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// CleanupInterval is how often stale data is removed
const CleanupInterval = 24 * time.Hour

// Cleaner removes stale data
type Cleaner interface {
	CleanupOldData(ctx context.Context) error
}

// Scheduler runs periodic maintenance jobs
type Scheduler struct {
	scheduler *gocron.Scheduler
	cleaner   Cleaner
	logger    *zap.Logger
	ctx       context.Context
	cancel    context.CancelFunc
}

// New creates a new scheduler instance
func New(cleaner Cleaner, logger *zap.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		cleaner:   cleaner,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start schedules cleanup once at startup and then every CleanupInterval
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(CleanupInterval).StartImmediately().Do(s.runCleanup); err != nil {
		return fmt.Errorf("failed to schedule cleanup: %w", err)
	}

	s.scheduler.StartAsync()
	s.logger.Info("Scheduler started", zap.Duration("cleanup_interval", CleanupInterval))
	return nil
}

// Stop cancels running jobs and stops the scheduler
func (s *Scheduler) Stop() {
	s.cancel()
	s.scheduler.Stop()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) runCleanup() {
	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	s.logger.Info("Running scheduled cleanup")
	if err := s.cleaner.CleanupOldData(ctx); err != nil {
		s.logger.Error("Failed to run scheduled cleanup", zap.Error(err))
	}
}
