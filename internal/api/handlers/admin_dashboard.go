package handlers

import (
	"context"
	"html/template"
	"net/http"

	"github.com/brianpage/portfolio-server/internal/storage"
	"github.com/rs/zerolog"
)

// AdminDashboardHandler renders the landing page of the admin panel.
type AdminDashboardHandler struct {
	Repo      storage.Repository
	Templates *template.Template
}

func NewAdminDashboardHandler(repo storage.Repository, templates *template.Template) *AdminDashboardHandler {
	return &AdminDashboardHandler{Repo: repo, Templates: templates}
}

// Dashboard handles GET /admin. Both counts are read inside one transaction
// so the numbers on the page come from the same snapshot.
func (h *AdminDashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var workCount, visitorCount int64
	err := h.Repo.WithTx(r.Context(), func(ctx context.Context, repo storage.Repository) error {
		var err error
		if workCount, err = repo.Works().Count(ctx); err != nil {
			return err
		}
		visitorCount, err = repo.Visitors().Count(ctx)
		return err
	})
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to load dashboard counts")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Title":        "Dashboard - Portfolio Admin",
		"WorkCount":    workCount,
		"VisitorCount": visitorCount,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("template error")
	}
}
