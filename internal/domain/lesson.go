package domain

import "time"

// StudyLesson is generated lesson content for one level
type StudyLesson struct {
	LevelID   int          `json:"levelId"`
	Title     string       `json:"title"`
	Summary   string       `json:"summary"`
	Steps     []LessonStep `json:"steps"`
	KeyPoints []string     `json:"keyPoints"`
}

// LessonStep is one page of the study wizard
type LessonStep struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
	Example string `json:"example,omitempty"`
}

// QuizQuestion is a multiple choice question
type QuizQuestion struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty"`
}

// Valid reports whether the question can be answered
func (q QuizQuestion) Valid() bool {
	return q.Prompt != "" && len(q.Options) >= 2 && q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options)
}

// Quiz is a generated test the learner answers once
type Quiz struct {
	ID          string         `json:"id"`
	UserID      string         `json:"-"`
	LevelID     int            `json:"levelId"`
	Questions   []QuizQuestion `json:"questions"`
	CreatedAt   time.Time      `json:"createdAt"`
	SubmittedAt *time.Time     `json:"submittedAt,omitempty"`
}

// Score counts correct answers. Missing or out of range answers count as wrong.
func (q *Quiz) Score(answers []int) int {
	correct := 0
	for i, question := range q.Questions {
		if i < len(answers) && answers[i] == question.CorrectIndex {
			correct++
		}
	}
	return correct
}

// QuizResult is returned after a quiz is submitted
type QuizResult struct {
	QuizID   string `json:"quizId"`
	LevelID  int    `json:"levelId"`
	Score    int    `json:"score"`
	Total    int    `json:"total"`
	Passed   bool   `json:"passed"`
	Unlocked bool   `json:"unlocked"`
	MaxLevel int    `json:"maxLevel"`
}
