package repository

import (
	"context"
	"time"

	"aaaquest/internal/domain"
)

// UserRepository defines operations on the users table
type UserRepository interface {
	Upsert(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, patch domain.UserPatch) error
}

// ProgressRepository defines level and score history operations
type ProgressRepository interface {
	GetProgress(ctx context.Context, userID string) (*domain.UserProgress, error)
	RecordQuizResult(ctx context.Context, quizID, userID string, entry domain.ScoreEntry, maxLevel int) error
}

// LessonRepository caches generated lessons per user and level
type LessonRepository interface {
	GetLesson(ctx context.Context, userID string, levelID int) (*domain.StudyLesson, error)
	SaveLesson(ctx context.Context, userID string, lesson *domain.StudyLesson) error
	ListLessons(ctx context.Context, userID string) (map[int]domain.StudyLesson, error)
}

// AttemptRepository tracks remaining checker attempts
type AttemptRepository interface {
	Remaining(ctx context.Context, userID string) (int, error)
	Consume(ctx context.Context, userID string) (int, error)
}

// QuizRepository stores generated quizzes until they are answered
type QuizRepository interface {
	Create(ctx context.Context, quiz *domain.Quiz) error
	Get(ctx context.Context, id string) (*domain.Quiz, error)
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}

// AnalysisRepository stores checker results with the analysed image
type AnalysisRepository interface {
	Save(ctx context.Context, analysis *domain.Analysis, image []byte) error
	Get(ctx context.Context, id string) (*domain.Analysis, []byte, error)
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// CertificateRepository stores issued certificates
type CertificateRepository interface {
	Save(ctx context.Context, cert *domain.Certificate) error
	Get(ctx context.Context, id string) (*domain.Certificate, error)
	GetByUser(ctx context.Context, userID string) (*domain.Certificate, error)
}
