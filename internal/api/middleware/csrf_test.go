package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var csrfFieldPattern = regexp.MustCompile(`name="gorilla\.csrf\.Token" value="([^"]+)"`)

// fetchCSRFToken performs the initial GET that hands the client its token and
// cookie, the way a browser loads a form before submitting it.
func fetchCSRFToken(t *testing.T, handler http.Handler, target string) (string, []*http.Cookie) {
	t.Helper()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", target, nil))
	require.Equal(t, http.StatusOK, w.Code)

	match := csrfFieldPattern.FindStringSubmatch(w.Body.String())
	require.Len(t, match, 2, "GET response should carry a CSRF field")
	return match[1], w.Result().Cookies()
}

func newCSRFTestHandler() http.Handler {
	protect := CSRFProtection("csrf-test-secret", false)
	return protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(CSRFField(r)))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestCSRFAllowsPlainHTTPFormPost(t *testing.T) {
	handler := newCSRFTestHandler()
	token, cookies := fetchCSRFToken(t, handler, "http://example.com/admin/login")

	form := url.Values{}
	form.Set("gorilla.csrf.Token", token)

	r := httptest.NewRequest("POST", "http://example.com/admin/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	// Browsers send the plain-http origin on cross-layer form posts.
	r.Header.Set("Origin", "http://example.com")
	for _, c := range cookies {
		r.AddCookie(c)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestCSRFAllowsPlainHTTPPostWithoutOrigin(t *testing.T) {
	handler := newCSRFTestHandler()
	token, cookies := fetchCSRFToken(t, handler, "http://example.com/admin/login")

	form := url.Values{}
	form.Set("gorilla.csrf.Token", token)

	r := httptest.NewRequest("POST", "http://example.com/admin/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		r.AddCookie(c)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestCSRFStillRejectsMissingToken(t *testing.T) {
	handler := newCSRFTestHandler()
	_, cookies := fetchCSRFToken(t, handler, "http://example.com/admin/login")

	r := httptest.NewRequest("POST", "http://example.com/admin/login", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "application/problem+json")
}
