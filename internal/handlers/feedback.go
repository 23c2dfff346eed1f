package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"feedback-survey/internal/metrics"
	"feedback-survey/internal/middleware"
	"feedback-survey/internal/models"
	"feedback-survey/internal/notify"
	"feedback-survey/internal/service"
)

const publishTimeout = 10 * time.Second

type FeedbackHandler struct {
	feedback *service.Feedback
	notifier notify.Notifier
	log      zerolog.Logger
}

func NewFeedbackHandler(feedback *service.Feedback, notifier notify.Notifier, log zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedback: feedback,
		notifier: notifier,
		log:      log,
	}
}

// --- POST /api/submit ---

func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		payload = nil
	}

	var submitter *models.Identity
	if id, ok := middleware.GetIdentity(r.Context()); ok {
		submitter = &id
	}

	record, err := h.feedback.Submit(r.Context(), payload, submitter)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			metrics.FeedbackSubmissions.WithLabelValues(metrics.OutcomeInvalid).Inc()
			h.log.Debug().Str("kind", string(verr.Kind)).Str("field", verr.Field).Msg("submission rejected")
			writeFailure(w, http.StatusBadRequest, verr.Message)
			return
		}
		metrics.FeedbackSubmissions.WithLabelValues(metrics.OutcomeError).Inc()
		h.log.Error().Err(err).Msg("append feedback")
		writeFailure(w, http.StatusInternalServerError, msgServerError)
		return
	}
	metrics.FeedbackSubmissions.WithLabelValues(metrics.OutcomeSuccess).Inc()

	// Notify in the background; delivery never affects the response.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		subject, body := notify.FormatFeedback(record)
		if err := h.notifier.Publish(ctx, subject, body); err != nil {
			h.log.Error().Err(err).Int64("feedback_id", record.ID).Msg("publish notification")
		}
	}()

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Feedback submitted!"})
}

// --- GET /api/results ---

func (h *FeedbackHandler) Results(w http.ResponseWriter, r *http.Request) {
	metrics.ResultsRequests.Inc()
	res, err := h.feedback.Results(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("aggregate results")
		writeFailure(w, http.StatusInternalServerError, msgServerError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
