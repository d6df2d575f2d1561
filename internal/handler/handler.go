package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"aaaquest/internal/domain"
	"aaaquest/internal/middleware"
	"aaaquest/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const maxJSONBody = 1 << 20

// Handler serves the HTTP API used by the web client
type Handler struct {
	authService        *service.AuthService
	studyService       *service.StudyService
	quizService        *service.QuizService
	checkerService     *service.CheckerService
	certificateService *service.CertificateService
	accountService     *service.AccountService
	logger             *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	authService *service.AuthService,
	studyService *service.StudyService,
	quizService *service.QuizService,
	checkerService *service.CheckerService,
	certificateService *service.CertificateService,
	accountService *service.AccountService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		authService:        authService,
		studyService:       studyService,
		quizService:        quizService,
		checkerService:     checkerService,
		certificateService: certificateService,
		accountService:     accountService,
		logger:             logger,
	}
}

// Router registers all routes
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Recover(h.logger), middleware.Logging(h.logger))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		jsonOK(w, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Public
	r.HandleFunc("/api/levels", h.handleLevels).Methods(http.MethodGet)
	r.HandleFunc("/api/certificates/{id}", h.handleGetCertificate).Methods(http.MethodGet)
	r.HandleFunc("/api/certificates/{id}/pdf", h.handleCertificatePDF).Methods(http.MethodGet)
	r.HandleFunc("/api/preferences/cookies", h.handleGetCookiePrefs).Methods(http.MethodGet)
	r.HandleFunc("/api/preferences/cookies", h.handlePutCookiePrefs).Methods(http.MethodPut)

	// Auth functions
	r.HandleFunc("/functions/check-auth-user", h.handleCheckAuthUser).Methods(http.MethodPost)
	r.HandleFunc("/functions/update-auth-user", h.handleUpdateAuthUser).Methods(http.MethodPost)

	// Signed in
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(h.authService, h.logger))
	api.HandleFunc("/me", h.handleMe).Methods(http.MethodGet)
	api.HandleFunc("/progress", h.handleProgress).Methods(http.MethodGet)
	api.HandleFunc("/progress/export", h.handleExportHistory).Methods(http.MethodGet)
	api.HandleFunc("/lessons/{level}", h.handleLesson).Methods(http.MethodGet)
	api.HandleFunc("/quizzes", h.handleStartQuiz).Methods(http.MethodPost)
	api.HandleFunc("/quizzes/{id}/submit", h.handleSubmitQuiz).Methods(http.MethodPost)
	api.HandleFunc("/checker/attempts", h.handleAttempts).Methods(http.MethodGet)
	api.HandleFunc("/checker/analyze", h.handleAnalyze).Methods(http.MethodPost)
	api.HandleFunc("/checker/analyses/{id}/report", h.handleAnalysisReport).Methods(http.MethodGet)
	api.HandleFunc("/certificates", h.handleIssueCertificate).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	return r
}

func jsonOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, data)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

// writeError maps domain errors to status codes. Anything unexpected is logged and hidden.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrUnauthorized):
		jsonError(w, "sign in required", http.StatusUnauthorized)
	case errors.Is(err, domain.ErrLevelLocked):
		jsonError(w, "this level is still locked", http.StatusForbidden)
	case errors.Is(err, domain.ErrNotEligible):
		jsonError(w, "pass every level to get a certificate", http.StatusForbidden)
	case errors.Is(err, domain.ErrNotFound):
		jsonError(w, "not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrQuizSubmitted):
		jsonError(w, "quiz already submitted", http.StatusConflict)
	case errors.Is(err, domain.ErrNoAttemptsLeft):
		jsonError(w, "no checker attempts left", http.StatusTooManyRequests)
	default:
		h.logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		jsonError(w, "something went wrong, try again later", http.StatusInternalServerError)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}

func pathInt(r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	return v, err == nil
}

func currentUser(r *http.Request) *domain.User {
	return middleware.UserFromContext(r.Context())
}

// cleanText trims input and drops unprintable characters
func cleanText(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(s))
}

func writeFile(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}
