package handler

import (
	"fmt"
	"net/http"
	"time"

	"aaaquest/internal/domain"
)

type levelView struct {
	domain.Level
	Unlocked bool               `json:"unlocked"`
	Best     *domain.ScoreEntry `json:"best,omitempty"`
}

// handleLevels lists the course levels
func (h *Handler) handleLevels(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, domain.Levels())
}

func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	progress, err := h.studyService.Progress(r.Context(), user.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	levels := make([]levelView, 0, domain.TotalLevels())
	for _, level := range domain.Levels() {
		view := levelView{Level: level, Unlocked: progress.CanAccess(level.ID)}
		if best, ok := progress.BestScore(level.ID); ok {
			view.Best = &best
		}
		levels = append(levels, view)
	}

	jsonOK(w, map[string]any{
		"progress":  progress,
		"levels":    levels,
		"completed": progress.Completed(),
	})
}

func (h *Handler) handleLesson(w http.ResponseWriter, r *http.Request) {
	levelID, ok := pathInt(r, "level")
	if !ok {
		jsonError(w, "invalid level", http.StatusBadRequest)
		return
	}

	lesson, err := h.studyService.Lesson(r.Context(), currentUser(r).ID, levelID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	jsonOK(w, lesson)
}

func (h *Handler) handleExportHistory(w http.ResponseWriter, r *http.Request) {
	data, err := h.accountService.ExportHistory(r.Context(), currentUser(r).ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	filename := fmt.Sprintf("aaaquest-history-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	writeFile(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", filename, data)
}
