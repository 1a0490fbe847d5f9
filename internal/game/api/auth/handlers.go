package auth

import (
	"encoding/json"
	"log"
	"net/http"

	apperrors "github.com/louisbranch/seabattle.space/internal/platform/errors"
	errsi18n "github.com/louisbranch/seabattle.space/internal/platform/errors/i18n"
	platformi18n "github.com/louisbranch/seabattle.space/internal/platform/i18n"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Locale   string `json:"locale,omitempty"`
}

type tokenResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RegisterRoutes mounts the auth endpoints on mux.
func (m *Manager) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/register", m.handleRegister)
	mux.HandleFunc("POST /api/auth/login", m.handleLogin)
}

func (m *Manager) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.CodeUnknown, "decode request", err))
		return
	}
	locale := platformi18n.Resolve(req.Locale)

	token, err := m.Register(r.Context(), req.Username, req.Password, locale)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tokenResponse{Username: req.Username, Token: token})
}

func (m *Manager) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.CodeUnknown, "decode request", err))
		return
	}

	token, err := m.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Username: req.Username, Token: token})
}

// writeError renders a localized error body with the status its code maps to.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.CodeOf(err)
	catalog := errsi18n.GetCatalog(platformi18n.Resolve(r.Header.Get("Accept-Language")))
	writeJSON(w, code.HTTPStatus(), errorResponse{
		Code:    string(code),
		Message: catalog.Format(string(code), apperrors.MetadataOf(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("auth: write response: %v", err)
	}
}
