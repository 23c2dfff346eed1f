package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"feedback-survey/internal/models"
	"feedback-survey/internal/session"
)

type contextKey string

const identityKey contextKey = "identity"

// MsgAuthRequired is the API response message for requests without a session.
const MsgAuthRequired = "Authentication required."

// Resolver resolves a request to its session identity.
type Resolver interface {
	Resolve(r *http.Request) (models.Identity, error)
}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity returns the identity resolved for this request, if any.
func GetIdentity(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(identityKey).(models.Identity)
	return id, ok
}

// RequireSession gates API routes: no session answers 401 JSON.
func RequireSession(resolver Resolver, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := resolver.Resolve(r)
			if err != nil {
				if errors.Is(err, session.ErrUnauthenticated) {
					writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": MsgAuthRequired})
					return
				}
				log.Error().Err(err).Msg("resolve session")
				writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "Server error."})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequirePageSession gates page routes: no session redirects to loginPath.
func RequirePageSession(resolver Resolver, loginPath string, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := resolver.Resolve(r)
			if err != nil {
				if errors.Is(err, session.ErrUnauthenticated) {
					http.Redirect(w, r, loginPath, http.StatusFound)
					return
				}
				log.Error().Err(err).Msg("resolve session")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
