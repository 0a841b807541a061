package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/brianpage/portfolio-server/internal/api/middleware"
	"github.com/brianpage/portfolio-server/internal/domain/visitors"
	"github.com/rs/zerolog"
)

// AdminVisitorsHandler lets the admin review and prune the visit log.
type AdminVisitorsHandler struct {
	Visitors  *visitors.Service
	Templates *template.Template
}

func NewAdminVisitorsHandler(svc *visitors.Service, templates *template.Template) *AdminVisitorsHandler {
	return &AdminVisitorsHandler{Visitors: svc, Templates: templates}
}

// List handles GET /admin/visitors, newest first.
func (h *AdminVisitorsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Visitors.List(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to list visitors")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := map[string]interface{}{
		"Title":     "Visitors - Portfolio Admin",
		"Visitors":  items,
		"CSRFField": middleware.CSRFField(r),
	}
	if err := h.Templates.ExecuteTemplate(w, "visitors_list.html", data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("template error")
	}
}

// View handles GET /admin/visitors/{id}.
func (h *AdminVisitorsHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	visitor, err := h.Visitors.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, visitors.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Int64("id", id).Msg("failed to load visitor")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := map[string]interface{}{
		"Title":     "Visit - Portfolio Admin",
		"Visitor":   visitor,
		"CSRFField": middleware.CSRFField(r),
	}
	if err := h.Templates.ExecuteTemplate(w, "visitor_view.html", data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("template error")
	}
}

// Delete handles POST /admin/visitors/{id}/delete.
func (h *AdminVisitorsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Visitors.Delete(r.Context(), id); err != nil {
		if errors.Is(err, visitors.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Int64("id", id).Msg("failed to delete visitor")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/visitors", http.StatusFound)
}
