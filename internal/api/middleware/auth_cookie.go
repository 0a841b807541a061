package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/brianpage/portfolio-server/internal/auth"
)

// SessionCookieName holds the signed admin session marker.
const SessionCookieName = "portfolio_admin_session"

type contextKeyAuth string

const sessionClaimsKey contextKeyAuth = "sessionClaims"

// AdminSession gates every admin entry point. A request without a live
// session is redirected to the login form before the wrapped handler can run
// any side effect.
func AdminSession(manager *auth.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if manager == nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || strings.TrimSpace(cookie.Value) == "" {
				http.Redirect(w, r, "/admin/login", http.StatusFound)
				return
			}

			claims, err := manager.Validate(cookie.Value)
			if err != nil {
				http.Redirect(w, r, "/admin/login", http.StatusFound)
				return
			}

			ctx := contextWithSessionClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithSessionClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, sessionClaimsKey, claims)
}

// SessionClaims returns the validated admin session for the request, or nil
// outside the AdminSession middleware.
func SessionClaims(r *http.Request) *auth.Claims {
	if r == nil {
		return nil
	}
	if claims, ok := r.Context().Value(sessionClaimsKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

// SetSessionCookie installs the session marker after a successful login.
func SetSessionCookie(w http.ResponseWriter, r *http.Request, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the session marker. Clearing an absent cookie
// is harmless, which keeps logout idempotent.
func ClearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}
