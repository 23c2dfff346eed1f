package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"feedback-survey/internal/metrics"
	"feedback-survey/internal/service"
	"feedback-survey/internal/session"
)

const (
	formPath = "/form"
	authPath = "/auth"
)

type AuthHandler struct {
	creds    *service.Credentials
	sessions *session.Manager
	log      zerolog.Logger
}

func NewAuthHandler(creds *service.Credentials, sessions *session.Manager, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		creds:    creds,
		sessions: sessions,
		log:      log,
	}
}

type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- POST /api/signup ---

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.creds.CreateUser(r.Context(), service.SignupInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			metrics.AuthAttempts.WithLabelValues("signup", metrics.OutcomeInvalid).Inc()
			writeFailure(w, http.StatusOK, verr.Message)
		case errors.Is(err, service.ErrDuplicateEmail):
			metrics.AuthAttempts.WithLabelValues("signup", metrics.OutcomeInvalid).Inc()
			writeFailure(w, http.StatusOK, service.MsgEmailRegistered)
		default:
			metrics.AuthAttempts.WithLabelValues("signup", metrics.OutcomeError).Inc()
			h.log.Error().Err(err).Msg("create user")
			writeFailure(w, http.StatusInternalServerError, msgServerError)
		}
		return
	}

	if err := h.sessions.Establish(w, user.Identity()); err != nil {
		h.log.Error().Err(err).Int64("user_id", user.ID).Msg("establish session")
		writeFailure(w, http.StatusInternalServerError, msgServerError)
		return
	}
	metrics.AuthAttempts.WithLabelValues("signup", metrics.OutcomeSuccess).Inc()
	h.log.Info().Int64("user_id", user.ID).Msg("user signed up")
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "redirect": formPath})
}

// --- POST /api/login ---

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.creds.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			metrics.AuthAttempts.WithLabelValues("login", metrics.OutcomeInvalid).Inc()
			writeFailure(w, http.StatusOK, verr.Message)
		case errors.Is(err, service.ErrAuthFailure):
			metrics.AuthAttempts.WithLabelValues("login", metrics.OutcomeInvalid).Inc()
			writeFailure(w, http.StatusOK, service.MsgInvalidCredentials)
		default:
			metrics.AuthAttempts.WithLabelValues("login", metrics.OutcomeError).Inc()
			h.log.Error().Err(err).Msg("authenticate")
			writeFailure(w, http.StatusInternalServerError, msgServerError)
		}
		return
	}

	if err := h.sessions.Establish(w, user.Identity()); err != nil {
		h.log.Error().Err(err).Int64("user_id", user.ID).Msg("establish session")
		writeFailure(w, http.StatusInternalServerError, msgServerError)
		return
	}
	metrics.AuthAttempts.WithLabelValues("login", metrics.OutcomeSuccess).Inc()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "redirect": formPath})
}

// --- GET /logout ---

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		h.log.Error().Err(err).Msg("revoke session")
	}
	http.Redirect(w, r, authPath, http.StatusFound)
}
