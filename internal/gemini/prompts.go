package gemini

import (
	"context"
	"fmt"

	"aaaquest/internal/domain"
)

const tutorSystemPrompt = `You are an accessibility tutor teaching web and app developers the Web Content Accessibility Guidelines (WCAG 2.2).
Write clear, practical, beginner friendly material. Always answer with valid JSON only.`

const checkerSystemPrompt = `You are a UI accessibility auditor. You will be given a screenshot of a user interface.
Find accessibility problems that are visible in the image: contrast, text size, touch target size, missing labels, reliance on colour alone, unclear focus, dense layouts.
Reference the WCAG 2.2 success criterion number for each finding.
Return ONLY valid JSON in this exact format:
{
  "summary": "One paragraph overview",
  "score": 0-100,
  "annotations": [
    {
      "issue": "Short title",
      "criterion": "1.4.3",
      "severity": "low" | "medium" | "high",
      "suggestion": "How to fix it",
      "box": {"x": 0.0, "y": 0.0, "width": 0.0, "height": 0.0}
    }
  ]
}
Box coordinates are fractions (0 to 1) of the image width and height, measured from the top left corner.
Do not invent problems that are not visible.`

// GenerateLesson asks the model for study material on a level
func (c *Client) GenerateLesson(ctx context.Context, level domain.Level) (*domain.StudyLesson, error) {
	prompt := fmt.Sprintf(`Create a study lesson for level %d (%s, "%s").
Topic: %s.
Return JSON: {"title": string, "summary": string, "steps": [{"heading": string, "body": string, "example": string}], "keyPoints": [string]}.
Use 4 to 6 steps. Each body is 2 to 4 short paragraphs. Examples show concrete HTML or design fixes.`,
		level.ID, level.Code, level.Title, level.Topic)

	var lesson domain.StudyLesson
	if err := c.GenerateJSON(ctx, tutorSystemPrompt, []Part{{Text: prompt}}, 0.7, &lesson); err != nil {
		return nil, err
	}
	lesson.LevelID = level.ID
	if lesson.Title == "" || len(lesson.Steps) == 0 {
		return nil, fmt.Errorf("model returned an empty lesson")
	}
	return &lesson, nil
}

// GenerateQuiz asks the model for n multiple choice questions on a level
func (c *Client) GenerateQuiz(ctx context.Context, level domain.Level, n int) ([]domain.QuizQuestion, error) {
	prompt := fmt.Sprintf(`Write %d multiple choice questions testing level %d (%s, "%s").
Topic: %s.
Return JSON: {"questions": [{"prompt": string, "options": [string, string, string, string], "correctIndex": number, "explanation": string}]}.
correctIndex is the zero based index of the single correct option.`,
		n, level.ID, level.Code, level.Title, level.Topic)

	var payload struct {
		Questions []domain.QuizQuestion `json:"questions"`
	}
	if err := c.GenerateJSON(ctx, tutorSystemPrompt, []Part{{Text: prompt}}, 0.5, &payload); err != nil {
		return nil, err
	}

	questions := make([]domain.QuizQuestion, 0, len(payload.Questions))
	for _, q := range payload.Questions {
		if q.Valid() {
			questions = append(questions, q)
		}
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("model returned no usable questions")
	}
	if len(questions) > n {
		questions = questions[:n]
	}
	return questions, nil
}

// AnalyzeImage asks the model to audit a UI screenshot
func (c *Client) AnalyzeImage(ctx context.Context, image []byte, mime string) (*domain.Analysis, error) {
	parts := []Part{
		{Text: "Audit this interface for accessibility problems."},
		imagePart(image, mime),
	}

	var analysis domain.Analysis
	if err := c.GenerateJSON(ctx, checkerSystemPrompt, parts, 0.2, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}
