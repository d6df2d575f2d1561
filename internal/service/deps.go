package service

import (
	"context"

	"aaaquest/internal/domain"
	"aaaquest/internal/supabase"
)

// ContentGenerator produces lesson and quiz content
type ContentGenerator interface {
	GenerateLesson(ctx context.Context, level domain.Level) (*domain.StudyLesson, error)
	GenerateQuiz(ctx context.Context, level domain.Level, n int) ([]domain.QuizQuestion, error)
}

// ImageAnalyzer audits UI screenshots
type ImageAnalyzer interface {
	AnalyzeImage(ctx context.Context, image []byte, mime string) (*domain.Analysis, error)
}

// AuthProvider is the hosted auth service
type AuthProvider interface {
	GetUser(ctx context.Context, accessToken string) (*supabase.AuthUser, error)
	FindUserByEmail(ctx context.Context, email string) (*supabase.AuthUser, error)
	UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (*supabase.AuthUser, error)
}
