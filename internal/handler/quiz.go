package handler

import (
	"net/http"

	"aaaquest/internal/domain"

	"github.com/gorilla/mux"
)

type startQuizRequest struct {
	Level     int `json:"level"`
	Questions int `json:"questions"`
}

type submitQuizRequest struct {
	Answers []int `json:"answers"`
}

type questionView struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// quizView is a quiz as shown to the learner, without the answers
type quizView struct {
	ID        string         `json:"id"`
	LevelID   int            `json:"levelId"`
	Questions []questionView `json:"questions"`
}

func newQuizView(q *domain.Quiz) quizView {
	view := quizView{ID: q.ID, LevelID: q.LevelID, Questions: make([]questionView, len(q.Questions))}
	for i, question := range q.Questions {
		view.Questions[i] = questionView{Prompt: question.Prompt, Options: question.Options}
	}
	return view
}

func (h *Handler) handleStartQuiz(w http.ResponseWriter, r *http.Request) {
	var req startQuizRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	quiz, err := h.quizService.Start(r.Context(), currentUser(r).ID, req.Level, req.Questions)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, newQuizView(quiz))
}

func (h *Handler) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var req submitQuizRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.quizService.Submit(r.Context(), currentUser(r).ID, mux.Vars(r)["id"], req.Answers)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	jsonOK(w, result)
}
