package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/brianpage/portfolio-server/internal/api/middleware"
	"github.com/brianpage/portfolio-server/internal/auth"
	"github.com/rs/zerolog"
)

// AdminAuthHandler owns the login and logout entry points. Login issues the
// session cookie; everything else under /admin is gated by the
// AdminSession middleware.
type AdminAuthHandler struct {
	Sessions  *auth.SessionManager
	Templates *template.Template
}

func NewAdminAuthHandler(sessions *auth.SessionManager, templates *template.Template) *AdminAuthHandler {
	return &AdminAuthHandler{
		Sessions:  sessions,
		Templates: templates,
	}
}

// LoginPage handles GET /admin/login. An already-authenticated admin is sent
// straight to the dashboard.
func (h *AdminAuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if _, err := h.Sessions.Validate(cookie.Value); err == nil {
			http.Redirect(w, r, "/admin", http.StatusFound)
			return
		}
	}
	h.renderLogin(w, r, http.StatusOK, "")
}

// Login handles POST /admin/login. On success it sets the session cookie and
// redirects to the dashboard; on bad credentials it re-renders the form with
// an error and leaves any existing session state untouched.
func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, "Invalid form submission")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := h.Sessions.Login(username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			zerolog.Ctx(r.Context()).Warn().Str("username", username).Msg("failed admin login")
			h.renderLogin(w, r, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("login failed")
		h.renderLogin(w, r, http.StatusInternalServerError, "Something went wrong, try again")
		return
	}

	middleware.SetSessionCookie(w, r, token, int(h.Sessions.TTL().Seconds()))
	http.Redirect(w, r, "/admin", http.StatusFound)
}

// Logout handles GET /admin/logout. The route sits behind AdminSession, and
// clearing the cookie is idempotent.
func (h *AdminAuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w, r)
	http.Redirect(w, r, "/admin/login", http.StatusFound)
}

func (h *AdminAuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, flash string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	data := map[string]interface{}{
		"Title":     "Admin Login - Portfolio",
		"Error":     flash,
		"CSRFField": middleware.CSRFField(r),
	}
	if err := h.Templates.ExecuteTemplate(w, "login.html", data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("template error")
	}
}
