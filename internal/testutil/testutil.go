package testutil

import (
	"bytes"
	"image"
	"image/png"
	"time"

	"aaaquest/internal/domain"
	"aaaquest/internal/supabase"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestAuthUser creates an auth service account
func NewTestAuthUser(id, email, fullName string) *supabase.AuthUser {
	return &supabase.AuthUser{
		ID:           id,
		Email:        email,
		AppMetadata:  map[string]any{"provider": "email"},
		UserMetadata: map[string]any{"full_name": fullName},
	}
}

// NewTestProgress creates progress at the given level with the given history
func NewTestProgress(maxLevel int, history ...domain.ScoreEntry) *domain.UserProgress {
	p := domain.NewUserProgress()
	p.MaxLevel = maxLevel
	p.History = append(p.History, history...)
	return p
}

// NewCompletedProgress creates progress with every level passed
func NewCompletedProgress() *domain.UserProgress {
	p := domain.NewUserProgress()
	for i := 1; i <= domain.TotalLevels(); i++ {
		p.Record(i, 3, 3, time.Now())
	}
	return p
}

// NewTestLesson creates a lesson for a level
func NewTestLesson(levelID int) *domain.StudyLesson {
	return &domain.StudyLesson{
		LevelID: levelID,
		Title:   "Test lesson",
		Summary: "Summary",
		Steps:   []domain.LessonStep{{Heading: "Step", Body: "Body"}},
	}
}

// NewTestQuestions creates n questions whose correct answer is option 0
func NewTestQuestions(n int) []domain.QuizQuestion {
	questions := make([]domain.QuizQuestion, n)
	for i := range questions {
		questions[i] = domain.QuizQuestion{
			Prompt:       "Question",
			Options:      []string{"right", "wrong"},
			CorrectIndex: 0,
		}
	}
	return questions
}

// NewTestPNG returns a small valid PNG image
func NewTestPNG() []byte {
	var buf bytes.Buffer
	_ = png.Encode(&buf, image.NewGray(image.Rect(0, 0, 8, 8)))
	return buf.Bytes()
}
