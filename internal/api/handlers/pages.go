package handlers

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog"
)

// PageHandler renders the public marketing pages. The pages carry no data;
// content on them loads through the public JSON API.
type PageHandler struct {
	Templates *template.Template
}

func NewPageHandler(templates *template.Template) *PageHandler {
	return &PageHandler{Templates: templates}
}

func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "home.html")
}

func (h *PageHandler) Creatives(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "creatives.html")
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, name string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Templates.ExecuteTemplate(w, name, nil); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("template", name).Msg("template error")
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
