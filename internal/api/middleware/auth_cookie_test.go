package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brianpage/portfolio-server/internal/auth"
	"github.com/stretchr/testify/require"
)

func newSessionManager() *auth.SessionManager {
	return auth.NewSessionManager("test-secret", time.Hour, "admin", "password123")
}

func protectedHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAdminSessionRedirectsWithoutCookie(t *testing.T) {
	called := false
	handler := AdminSession(newSessionManager())(protectedHandler(&called))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/admin/login", w.Header().Get("Location"))
	require.False(t, called, "gated handler must not run unauthenticated")
}

func TestAdminSessionRedirectsWithInvalidCookie(t *testing.T) {
	called := false
	handler := AdminSession(newSessionManager())(protectedHandler(&called))

	r := httptest.NewRequest("GET", "/admin", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tampered"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusFound, w.Code)
	require.False(t, called)
}

func TestAdminSessionPassesValidCookie(t *testing.T) {
	manager := newSessionManager()
	token, err := manager.Login("admin", "password123")
	require.NoError(t, err)

	var claims *auth.Claims
	handler := AdminSession(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims = SessionClaims(r)
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest("GET", "/admin", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, claims)
	require.Equal(t, "admin", claims.Subject)
}

func TestAdminSessionRejectsExpiredToken(t *testing.T) {
	expired := auth.NewSessionManager("test-secret", -time.Minute, "admin", "password123")
	token, err := expired.Login("admin", "password123")
	require.NoError(t, err)

	called := false
	handler := AdminSession(newSessionManager())(protectedHandler(&called))

	r := httptest.NewRequest("GET", "/admin", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusFound, w.Code)
	require.False(t, called)
}

func TestClearSessionCookieExpiresCookie(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/admin/logout", nil)

	ClearSessionCookie(w, r)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, SessionCookieName, cookies[0].Name)
	require.Empty(t, cookies[0].Value)
	require.Equal(t, -1, cookies[0].MaxAge)
}
