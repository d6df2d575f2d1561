package handler

import (
	"net/http"

	"aaaquest/internal/domain"
	"aaaquest/internal/middleware"
)

type checkAuthUserRequest struct {
	Email string `json:"email"`
}

// handleCheckAuthUser tells the sign-in form whether an account exists and how it signs in
func (h *Handler) handleCheckAuthUser(w http.ResponseWriter, r *http.Request) {
	var req checkAuthUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	lookup, err := h.authService.CheckUser(r.Context(), req.Email)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	jsonOK(w, lookup)
}

// handleUpdateAuthUser changes the caller's email, password or name
func (h *Handler) handleUpdateAuthUser(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	if token == "" {
		jsonError(w, "sign in required", http.StatusUnauthorized)
		return
	}

	var patch domain.UserPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	patch.FullName = cleanText(patch.FullName)

	user, err := h.authService.UpdateProfile(r.Context(), token, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	jsonOK(w, map[string]any{"user": user})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, currentUser(r))
}
