package service

import (
	"context"

	"aaaquest/internal/domain"
	"aaaquest/internal/repository"

	"go.uber.org/zap"
)

// StudyService serves lessons and learner progress
type StudyService struct {
	progressRepo repository.ProgressRepository
	lessonRepo   repository.LessonRepository
	generator    ContentGenerator
	logger       *zap.Logger
}

// NewStudyService creates a new study service
func NewStudyService(
	progressRepo repository.ProgressRepository,
	lessonRepo repository.LessonRepository,
	generator ContentGenerator,
	logger *zap.Logger,
) *StudyService {
	return &StudyService{
		progressRepo: progressRepo,
		lessonRepo:   lessonRepo,
		generator:    generator,
		logger:       logger,
	}
}

// Progress returns level, history and cached lessons of the user
func (s *StudyService) Progress(ctx context.Context, userID string) (*domain.UserProgress, error) {
	progress, err := s.progressRepo.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	lessons, err := s.lessonRepo.ListLessons(ctx, userID)
	if err != nil {
		return nil, err
	}
	if lessons != nil {
		progress.CachedLessons = lessons
	}

	return progress, nil
}

// Lesson returns the lesson for an unlocked level, generating it on first use
func (s *StudyService) Lesson(ctx context.Context, userID string, levelID int) (*domain.StudyLesson, error) {
	level, ok := domain.LevelByID(levelID)
	if !ok {
		return nil, domain.ErrNotFound
	}

	progress, err := s.progressRepo.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !progress.CanAccess(levelID) {
		return nil, domain.ErrLevelLocked
	}

	cached, err := s.lessonRepo.GetLesson(ctx, userID, levelID)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	s.logger.Info("Generating lesson", zap.String("user_id", userID), zap.Int("level", levelID))

	lesson, err := s.generator.GenerateLesson(ctx, level)
	if err != nil {
		s.logger.Error("Failed to generate lesson", zap.Int("level", levelID), zap.Error(err))
		return nil, err
	}

	if err := s.lessonRepo.SaveLesson(ctx, userID, lesson); err != nil {
		s.logger.Warn("Failed to cache lesson", zap.String("user_id", userID), zap.Int("level", levelID), zap.Error(err))
	}

	return lesson, nil
}
