package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/brianpage/portfolio-server/internal/api/problem"
	"github.com/brianpage/portfolio-server/internal/storage"
	"github.com/rs/zerolog"
)

// SetupHandler exposes the key-guarded schema bootstrap. It exists so a
// fresh deployment can be initialized over HTTP without shell access; the
// operation is idempotent and may be hit any number of times.
type SetupHandler struct {
	Repo storage.Repository
	Key  string
	Env  string
}

func NewSetupHandler(repo storage.Repository, key, env string) *SetupHandler {
	return &SetupHandler{Repo: repo, Key: key, Env: env}
}

// Setup handles GET /internal/setup?key=... A bad key is rejected before any
// storage work happens.
func (h *SetupHandler) Setup(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if subtle.ConstantTimeCompare([]byte(key), []byte(h.Key)) != 1 {
		problem.Write(w, r, http.StatusForbidden,
			"https://brianpage.dev/problems/forbidden",
			"Invalid setup key", problem.ErrForbidden, h.Env)
		return
	}

	if err := h.Repo.EnsureSchema(r.Context()); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("schema setup failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error"})
		return
	}

	zerolog.Ctx(r.Context()).Info().Msg("schema setup complete")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
