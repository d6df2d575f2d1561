package handler

import (
	"errors"
	"io"
	"net/http"

	"aaaquest/internal/service"

	"github.com/gorilla/mux"
)

// Room for multipart headers around the image
const multipartOverhead = 1 << 20

func (h *Handler) handleAttempts(w http.ResponseWriter, r *http.Request) {
	remaining, err := h.checkerService.Attempts(r.Context(), currentUser(r).ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	jsonOK(w, map[string]int{"remaining": remaining})
}

// handleAnalyze accepts a multipart upload with an "image" field
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxImageSize+multipartOverhead)
	if err := r.ParseMultipartForm(service.MaxImageSize + multipartOverhead); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, "image is too large", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "expected a multipart form with an image", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, "image is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, service.MaxImageSize+1))
	if err != nil {
		jsonError(w, "failed to read image", http.StatusBadRequest)
		return
	}

	analysis, remaining, err := h.checkerService.Analyze(r.Context(), currentUser(r).ID, image)
	if err != nil {
		if remaining == service.AttemptsUnknown {
			h.writeError(w, r, err)
			return
		}
		// The attempt is already spent, so the client needs the new count
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": "analysis failed, try again later", "remaining": remaining})
		return
	}

	jsonOK(w, map[string]any{"analysis": analysis, "remaining": remaining})
}

func (h *Handler) handleAnalysisReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	pdf, err := h.checkerService.Report(r.Context(), currentUser(r).ID, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeFile(w, "application/pdf", "aaaquest-report-"+id+".pdf", pdf)
}
