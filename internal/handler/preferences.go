package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"
)

const (
	cookiePrefsName   = "cookie_prefs"
	cookiePrefsMaxAge = 365 * 24 * time.Hour
)

// CookiePrefs is the visitor's cookie consent. Necessary cookies cannot be refused.
type CookiePrefs struct {
	Necessary bool `json:"necessary"`
	Analytics bool `json:"analytics"`
	Marketing bool `json:"marketing"`
	Decided   bool `json:"decided"`
}

func readCookiePrefs(r *http.Request) CookiePrefs {
	prefs := CookiePrefs{Necessary: true}

	cookie, err := r.Cookie(cookiePrefsName)
	if err != nil {
		return prefs
	}
	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return prefs
	}
	var stored CookiePrefs
	if err := json.Unmarshal(raw, &stored); err != nil {
		return prefs
	}

	stored.Necessary = true
	stored.Decided = true
	return stored
}

func (h *Handler) handleGetCookiePrefs(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, readCookiePrefs(r))
}

func (h *Handler) handlePutCookiePrefs(w http.ResponseWriter, r *http.Request) {
	var prefs CookiePrefs
	if err := decodeJSON(w, r, &prefs); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	prefs.Necessary = true
	prefs.Decided = true

	raw, err := json.Marshal(prefs)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookiePrefsName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   int(cookiePrefsMaxAge.Seconds()),
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	jsonOK(w, prefs)
}
