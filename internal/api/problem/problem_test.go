package problem

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteIncludesDetailInDevelopment(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/creatives", nil)

	Write(w, r, 500, "https://example.com/problems/server-error", "Server error", errors.New("pool exhausted"), "development")

	require.Equal(t, 500, w.Code)
	require.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var p ProblemDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	require.Equal(t, "pool exhausted", p.Detail)
	require.Equal(t, "/api/creatives", p.Instance)
}

func TestWriteHidesDetailInProduction(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/creatives", nil)

	Write(w, r, 500, "https://example.com/problems/server-error", "Server error", errors.New("pool exhausted"), "production")

	var p ProblemDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	require.NotContains(t, p.Detail, "pool exhausted")
}

func TestWriteHonorsDetailOption(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/admin/works", nil)

	Write(w, r, 404, "https://example.com/problems/not-found", "Not found", nil, "production", WithDetail("work 7 does not exist"))

	var p ProblemDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	require.Equal(t, "work 7 does not exist", p.Detail)
	require.Equal(t, 404, p.Status)
}
