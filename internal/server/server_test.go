package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv := New(Config{Host: "localhost", Port: "8086", DataDir: t.TempDir(), NoDB: true})
	t.Cleanup(func() { srv.Close() })
	return srv
}

func TestServer_Routes(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/themes", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Toner"`)
	assert.Contains(t, strings.Join(rec.Header().Values("Link"), ","), `rel="datasets"`)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tables", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_OpenAPI(t *testing.T) {
	srv := newTestServer(t)
	spec := srv.OpenAPI()
	assert.Equal(t, "foldingmap API", spec.Info.Title)
	for _, path := range []string{
		"/api/v1/themes/{name}/resolve",
		"/api/v1/visibility/apply",
		"/api/v1/tables/{table}/ramp",
		"/api/v1/events",
		"/api/v1/info",
	} {
		assert.Contains(t, spec.Paths, path)
	}
}
