package server

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"feedback-survey/internal/handlers"
	"feedback-survey/internal/middleware"
	"feedback-survey/internal/notify"
	"feedback-survey/internal/service"
	"feedback-survey/internal/session"
)

type Deps struct {
	Credentials *service.Credentials
	Feedback    *service.Feedback
	Sessions    *session.Manager
	Notifier    notify.Notifier
	Log         zerolog.Logger

	// RequireAuth gates submission, results and the form pages behind a session.
	RequireAuth bool
	// AllowedOrigins enables credentialed cross-origin requests from these origins.
	AllowedOrigins []string
}

// NewRouter wires every route of the service.
func NewRouter(d Deps) http.Handler {
	authHandler := handlers.NewAuthHandler(d.Credentials, d.Sessions, d.Log.With().Str("component", "auth").Logger())
	feedbackHandler := handlers.NewFeedbackHandler(d.Feedback, d.Notifier, d.Log.With().Str("component", "feedback").Logger())
	userHandler := handlers.NewUserHandler(d.Credentials, d.Log.With().Str("component", "user").Logger())

	var resolver middleware.Resolver
	if d.RequireAuth {
		resolver = d.Sessions
	}
	pageHandler := handlers.NewPageHandler(resolver, d.Log.With().Str("component", "pages").Logger())

	// Credentials are only allowed for explicitly listed origins.
	corsOptions := cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-CSRF-Token"},
		MaxAge:         300,
	}
	if len(d.AllowedOrigins) > 0 && !slices.Contains(d.AllowedOrigins, "*") {
		corsOptions.AllowedOrigins = d.AllowedOrigins
		corsOptions.AllowCredentials = true
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Log.With().Str("component", "http").Logger()))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(corsOptions))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok","service":"feedback-survey"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public routes
	r.Get("/", pageHandler.Home)
	r.Get("/auth", pageHandler.Auth)
	r.Get("/logout", authHandler.Logout)
	r.Post("/api/signup", authHandler.Signup)
	r.Post("/api/login", authHandler.Login)

	// Session-bound routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(d.Sessions, d.Log))
		r.Get("/api/me", userHandler.Me)
	})

	if d.RequireAuth {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(d.Sessions, d.Log))
			r.Post("/api/submit", feedbackHandler.Submit)
			r.Get("/api/results", feedbackHandler.Results)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePageSession(d.Sessions, "/auth", d.Log))
			r.Get("/form", pageHandler.Form)
			r.Get("/dashboard", pageHandler.Dashboard)
		})
	} else {
		r.Post("/api/submit", feedbackHandler.Submit)
		r.Get("/api/results", feedbackHandler.Results)
		r.Get("/form", pageHandler.Form)
		r.Get("/dashboard", pageHandler.Dashboard)
	}

	return r
}
