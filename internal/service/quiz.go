package service

import (
	"context"
	"time"

	"aaaquest/internal/domain"
	"aaaquest/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultQuizSize = 6
	maxQuizSize     = 12
)

// QuizService runs level tests and advances progress
type QuizService struct {
	progressRepo repository.ProgressRepository
	quizRepo     repository.QuizRepository
	generator    ContentGenerator
	logger       *zap.Logger
	now          func() time.Time
}

// NewQuizService creates a new quiz service
func NewQuizService(
	progressRepo repository.ProgressRepository,
	quizRepo repository.QuizRepository,
	generator ContentGenerator,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		progressRepo: progressRepo,
		quizRepo:     quizRepo,
		generator:    generator,
		logger:       logger,
		now:          time.Now,
	}
}

// Start generates a quiz with n questions for an unlocked level
func (s *QuizService) Start(ctx context.Context, userID string, levelID, n int) (*domain.Quiz, error) {
	level, ok := domain.LevelByID(levelID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if n <= 0 {
		n = DefaultQuizSize
	}
	if n > maxQuizSize {
		n = maxQuizSize
	}

	progress, err := s.progressRepo.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !progress.CanAccess(levelID) {
		return nil, domain.ErrLevelLocked
	}

	questions, err := s.generator.GenerateQuiz(ctx, level, n)
	if err != nil {
		s.logger.Error("Failed to generate quiz", zap.Int("level", levelID), zap.Error(err))
		return nil, err
	}

	quiz := &domain.Quiz{
		ID:        uuid.NewString(),
		UserID:    userID,
		LevelID:   levelID,
		Questions: questions,
		CreatedAt: s.now().UTC(),
	}
	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		return nil, err
	}

	return quiz, nil
}

// Submit scores the answers, records the result and unlocks the next level on a pass
func (s *QuizService) Submit(ctx context.Context, userID, quizID string, answers []int) (*domain.QuizResult, error) {
	if _, err := uuid.Parse(quizID); err != nil {
		return nil, domain.ErrNotFound
	}

	quiz, err := s.quizRepo.Get(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil || quiz.UserID != userID {
		return nil, domain.ErrNotFound
	}
	if quiz.SubmittedAt != nil {
		return nil, domain.ErrQuizSubmitted
	}

	progress, err := s.progressRepo.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	correct := quiz.Score(answers)
	total := len(quiz.Questions)
	unlocked := progress.Record(quiz.LevelID, correct, total, s.now().UTC())

	// Closing the quiz and saving the score commit together, so a failed save leaves the quiz open
	entry := progress.History[len(progress.History)-1]
	if err := s.progressRepo.RecordQuizResult(ctx, quizID, userID, entry, progress.MaxLevel); err != nil {
		return nil, err
	}

	s.logger.Info("Quiz submitted",
		zap.String("user_id", userID),
		zap.Int("level", quiz.LevelID),
		zap.Int("score", correct),
		zap.Int("total", total),
		zap.Bool("unlocked", unlocked),
	)

	return &domain.QuizResult{
		QuizID:   quizID,
		LevelID:  quiz.LevelID,
		Score:    correct,
		Total:    total,
		Passed:   domain.Passed(correct, total),
		Unlocked: unlocked,
		MaxLevel: progress.MaxLevel,
	}, nil
}
