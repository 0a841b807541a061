package handlers

import (
	"net"
	"net/http"
	"strings"

	"github.com/brianpage/portfolio-server/internal/api/problem"
	"github.com/brianpage/portfolio-server/internal/domain/visitors"
	"github.com/brianpage/portfolio-server/internal/domain/works"
	"github.com/brianpage/portfolio-server/internal/metrics"
	"github.com/rs/zerolog"
)

// PublicHandler serves the unauthenticated JSON API.
type PublicHandler struct {
	Works    *works.Service
	Visitors *visitors.Service
	Env      string
}

func NewPublicHandler(worksService *works.Service, visitorsService *visitors.Service, env string) *PublicHandler {
	return &PublicHandler{
		Works:    worksService,
		Visitors: visitorsService,
		Env:      env,
	}
}

type creativeResponse struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ListCreatives handles GET /api/creatives. Only published works are
// returned, newest first, and only their title and url are exposed.
func (h *PublicHandler) ListCreatives(w http.ResponseWriter, r *http.Request) {
	items, err := h.Works.List(r.Context(), works.Filter{PublishedOnly: true})
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, "https://brianpage.dev/problems/server-error", "Server error", err, h.Env)
		return
	}

	response := make([]creativeResponse, 0, len(items))
	for _, item := range items {
		response = append(response, creativeResponse{Title: item.Title, URL: item.URL})
	}
	writeJSON(w, http.StatusOK, response)
}

// TrackVisit handles POST /api/track-visit. Storage failures are logged and
// reported as a generic error status; they never reach the caller raw, and a
// failed insert leaves no partial row behind.
func (h *PublicHandler) TrackVisit(w http.ResponseWriter, r *http.Request) {
	ipAddress := clientIP(r)
	userAgent := r.UserAgent()

	if _, err := h.Visitors.Record(r.Context(), ipAddress, userAgent); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("track visit failed")
		metrics.VisitsTracked.WithLabelValues("error").Inc()
		writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error"})
		return
	}
	metrics.VisitsTracked.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusCreated, map[string]string{"status": "success"})
}

// clientIP prefers the first X-Forwarded-For hop (the server runs behind a
// proxy in production) and falls back to the connection address. An
// unparseable address yields an empty string; the visit is logged anyway.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
