package api

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/brianpage/portfolio-server/internal/api/handlers"
	"github.com/brianpage/portfolio-server/internal/api/middleware"
	"github.com/brianpage/portfolio-server/internal/auth"
	"github.com/brianpage/portfolio-server/internal/config"
	"github.com/brianpage/portfolio-server/internal/domain/visitors"
	"github.com/brianpage/portfolio-server/internal/domain/works"
	"github.com/brianpage/portfolio-server/internal/metrics"
	"github.com/brianpage/portfolio-server/internal/storage"
	"github.com/brianpage/portfolio-server/web"
	"github.com/rs/zerolog"
)

// NewRouter wires every route of the server: the public pages and JSON API,
// the session-gated admin panel, and the operational endpoints.
func NewRouter(cfg config.Config, logger zerolog.Logger, repo storage.Repository) (http.Handler, error) {
	templates, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	worksService := works.NewService(repo.Works())
	visitorsService := visitors.NewService(repo.Visitors())
	sessions := auth.NewSessionManager(cfg.Auth.SecretKey, cfg.Auth.SessionTTL, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword)

	pages := handlers.NewPageHandler(templates)
	public := handlers.NewPublicHandler(worksService, visitorsService, cfg.Environment)
	authHandler := handlers.NewAdminAuthHandler(sessions, templates)
	dashboard := handlers.NewAdminDashboardHandler(repo, templates)
	adminWorks := handlers.NewAdminWorksHandler(worksService, templates)
	adminVisitors := handlers.NewAdminVisitorsHandler(visitorsService, templates)
	setup := handlers.NewSetupHandler(repo, cfg.Setup.Key, cfg.Environment)
	health := handlers.NewHealthHandler(repo)

	mux := http.NewServeMux()

	mux.Handle("/{$}", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(pages.Home),
	}))
	mux.Handle("/creatives", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(pages.Creatives),
	}))
	mux.Handle("/static/style.css", web.StyleHandler())

	mux.Handle("/api/creatives", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(public.ListCreatives),
	}))
	mux.Handle("/api/track-visit", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(public.TrackVisit),
	}))

	mux.Handle("/healthz", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(health.Healthz),
	}))
	mux.Handle("/readyz", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(health.Readyz),
	}))
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/internal/setup", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(setup.Setup),
	}))

	// Admin subtree. Login is reachable without a session; everything else
	// passes through AdminSession. CSRF protection wraps the whole subtree so
	// the login form itself carries a token.
	gate := middleware.AdminSession(sessions)

	adminMux := http.NewServeMux()
	adminMux.Handle("/admin/login", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(authHandler.LoginPage),
		http.MethodPost: http.HandlerFunc(authHandler.Login),
	}))
	adminMux.Handle("/admin/logout", gate(methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(authHandler.Logout),
	})))
	adminMux.Handle("/admin", gate(methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(dashboard.Dashboard),
	})))
	adminMux.Handle("/admin/works", gate(methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(adminWorks.List),
		http.MethodPost: http.HandlerFunc(adminWorks.Create),
	})))
	adminMux.Handle("/admin/works/new", gate(methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(adminWorks.New),
	})))
	adminMux.Handle("/admin/works/{id}", gate(methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(adminWorks.Update),
	})))
	adminMux.Handle("/admin/works/{id}/edit", gate(methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(adminWorks.Edit),
	})))
	adminMux.Handle("/admin/works/{id}/delete", gate(methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(adminWorks.Delete),
	})))
	adminMux.Handle("/admin/visitors", gate(methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(adminVisitors.List),
	})))
	adminMux.Handle("/admin/visitors/{id}", gate(methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(adminVisitors.View),
	})))
	adminMux.Handle("/admin/visitors/{id}/delete", gate(methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(adminVisitors.Delete),
	})))

	csrfProtect := middleware.CSRFProtection(cfg.Auth.SecretKey, cfg.Environment == "production")
	mux.Handle("/admin", csrfProtect(adminMux))
	mux.Handle("/admin/", csrfProtect(adminMux))

	var handler http.Handler = mux
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(logger)(handler)
	return handler, nil
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
