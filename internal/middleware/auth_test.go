package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"feedback-survey/internal/models"
	"feedback-survey/internal/session"
)

type stubResolver struct {
	id  models.Identity
	err error
}

func (s stubResolver) Resolve(*http.Request) (models.Identity, error) { return s.id, s.err }

func echoIdentity() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetIdentity(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_ = json.NewEncoder(w).Encode(id)
	})
}

func TestRequireSession(t *testing.T) {
	ada := models.Identity{UserID: 1, Name: "Ada", Email: "ada@x.com"}
	tests := []struct {
		name       string
		resolver   stubResolver
		wantStatus int
	}{
		{"authenticated", stubResolver{id: ada}, http.StatusOK},
		{"no session", stubResolver{err: session.ErrUnauthenticated}, http.StatusUnauthorized},
		{"store failure", stubResolver{err: errors.New("down")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := RequireSession(tt.resolver, zerolog.Nop())(echoIdentity())
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/results", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d. Body: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus == http.StatusUnauthorized {
				var body map[string]any
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
					t.Fatalf("decode body: %v", err)
				}
				if body["success"] != false || body["message"] != MsgAuthRequired {
					t.Errorf("body = %v", body)
				}
			}
			if tt.wantStatus == http.StatusOK {
				var got models.Identity
				_ = json.Unmarshal(w.Body.Bytes(), &got)
				if got != ada {
					t.Errorf("identity = %+v, want %+v", got, ada)
				}
			}
		})
	}
}

func TestRequirePageSessionRedirects(t *testing.T) {
	h := RequirePageSession(stubResolver{err: session.ErrUnauthenticated}, "/auth", zerolog.Nop())(echoIdentity())
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/form", nil))

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if loc := w.Header().Get("Location"); loc != "/auth" {
		t.Errorf("Location = %q, want /auth", loc)
	}
}
