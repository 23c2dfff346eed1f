package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog"

	"feedback-survey/internal/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// PageHandler serves the HTML pages. sessions is nil in the ungated variant.
type PageHandler struct {
	sessions middleware.Resolver
	log      zerolog.Logger
}

func NewPageHandler(sessions middleware.Resolver, log zerolog.Logger) *PageHandler {
	return &PageHandler{sessions: sessions, log: log}
}

type pageData struct {
	UserName string
	Gated    bool
}

// --- GET / ---

func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil || h.signedIn(r) {
		http.Redirect(w, r, formPath, http.StatusFound)
		return
	}
	http.Redirect(w, r, authPath, http.StatusFound)
}

// --- GET /auth ---

func (h *PageHandler) Auth(w http.ResponseWriter, r *http.Request) {
	if h.sessions != nil && h.signedIn(r) {
		http.Redirect(w, r, formPath, http.StatusFound)
		return
	}
	h.render(w, r, "auth.html")
}

// --- GET /form ---

func (h *PageHandler) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "index.html")
}

// --- GET /dashboard ---

func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "dashboard.html")
}

func (h *PageHandler) signedIn(r *http.Request) bool {
	_, err := h.sessions.Resolve(r)
	return err == nil
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, name string) {
	data := pageData{Gated: h.sessions != nil}
	if id, ok := middleware.GetIdentity(r.Context()); ok {
		data.UserName = id.Name
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		h.log.Error().Err(err).Str("template", name).Msg("render page")
	}
}
