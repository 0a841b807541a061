package handlers

import (
	"net/http"

	"github.com/brianpage/portfolio-server/internal/storage"
)

type HealthHandler struct {
	Repo storage.Repository
}

func NewHealthHandler(repo storage.Repository) *HealthHandler {
	return &HealthHandler{Repo: repo}
}

// Healthz reports process liveness only.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz additionally checks that storage answers.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"reason": "storage unreachable",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
