package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"feedback-survey/internal/middleware"
	"feedback-survey/internal/service"
)

type UserHandler struct {
	creds *service.Credentials
	log   zerolog.Logger
}

func NewUserHandler(creds *service.Credentials, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		creds: creds,
		log:   log,
	}
}

// --- GET /api/me ---

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeFailure(w, http.StatusUnauthorized, middleware.MsgAuthRequired)
		return
	}

	user, err := h.creds.User(r.Context(), id.UserID)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", id.UserID).Msg("find user")
		writeFailure(w, http.StatusInternalServerError, msgServerError)
		return
	}
	if user == nil {
		writeFailure(w, http.StatusNotFound, "User not found.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}
