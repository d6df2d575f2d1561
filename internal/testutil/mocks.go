package testutil

import (
	"context"
	"time"

	"aaaquest/internal/domain"
	"aaaquest/internal/supabase"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id string, patch domain.UserPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

// MockProgressRepository is a mock for ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) GetProgress(ctx context.Context, userID string) (*domain.UserProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProgress), args.Error(1)
}

func (m *MockProgressRepository) RecordQuizResult(ctx context.Context, quizID, userID string, entry domain.ScoreEntry, maxLevel int) error {
	args := m.Called(ctx, quizID, userID, entry, maxLevel)
	return args.Error(0)
}

// MockLessonRepository is a mock for LessonRepository
type MockLessonRepository struct {
	mock.Mock
}

func (m *MockLessonRepository) GetLesson(ctx context.Context, userID string, levelID int) (*domain.StudyLesson, error) {
	args := m.Called(ctx, userID, levelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudyLesson), args.Error(1)
}

func (m *MockLessonRepository) SaveLesson(ctx context.Context, userID string, lesson *domain.StudyLesson) error {
	args := m.Called(ctx, userID, lesson)
	return args.Error(0)
}

func (m *MockLessonRepository) ListLessons(ctx context.Context, userID string) (map[int]domain.StudyLesson, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]domain.StudyLesson), args.Error(1)
}

// MockAttemptRepository is a mock for AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Remaining(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockAttemptRepository) Consume(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// MockQuizRepository is a mock for QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) Get(ctx context.Context, id string) (*domain.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockAnalysisRepository is a mock for AnalysisRepository
type MockAnalysisRepository struct {
	mock.Mock
}

func (m *MockAnalysisRepository) Save(ctx context.Context, analysis *domain.Analysis, image []byte) error {
	args := m.Called(ctx, analysis, image)
	return args.Error(0)
}

func (m *MockAnalysisRepository) Get(ctx context.Context, id string) (*domain.Analysis, []byte, error) {
	args := m.Called(ctx, id)
	var analysis *domain.Analysis
	if a := args.Get(0); a != nil {
		analysis = a.(*domain.Analysis)
	}
	var image []byte
	if img := args.Get(1); img != nil {
		image = img.([]byte)
	}
	return analysis, image, args.Error(2)
}

func (m *MockAnalysisRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockCertificateRepository is a mock for CertificateRepository
type MockCertificateRepository struct {
	mock.Mock
}

func (m *MockCertificateRepository) Save(ctx context.Context, cert *domain.Certificate) error {
	args := m.Called(ctx, cert)
	return args.Error(0)
}

func (m *MockCertificateRepository) Get(ctx context.Context, id string) (*domain.Certificate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) GetByUser(ctx context.Context, userID string) (*domain.Certificate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Certificate), args.Error(1)
}

// MockGenerator is a mock for the lesson, quiz and image model calls
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateLesson(ctx context.Context, level domain.Level) (*domain.StudyLesson, error) {
	args := m.Called(ctx, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudyLesson), args.Error(1)
}

func (m *MockGenerator) GenerateQuiz(ctx context.Context, level domain.Level, n int) ([]domain.QuizQuestion, error) {
	args := m.Called(ctx, level, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuizQuestion), args.Error(1)
}

func (m *MockGenerator) AnalyzeImage(ctx context.Context, image []byte, mime string) (*domain.Analysis, error) {
	args := m.Called(ctx, image, mime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analysis), args.Error(1)
}

// MockAuthProvider is a mock for the hosted auth service
type MockAuthProvider struct {
	mock.Mock
}

func (m *MockAuthProvider) GetUser(ctx context.Context, accessToken string) (*supabase.AuthUser, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supabase.AuthUser), args.Error(1)
}

func (m *MockAuthProvider) FindUserByEmail(ctx context.Context, email string) (*supabase.AuthUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supabase.AuthUser), args.Error(1)
}

func (m *MockAuthProvider) UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (*supabase.AuthUser, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supabase.AuthUser), args.Error(1)
}
