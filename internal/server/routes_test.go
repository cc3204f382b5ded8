package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/app"
	"github.com/ternarybob/reperio/internal/common"
	"github.com/ternarybob/reperio/internal/handlers"
)

// newRouterForTest builds the route table over an app with only the system
// handlers populated; dispatch tests below never reach the gateway.
func newRouterForTest() http.Handler {
	logger := arbor.NewLogger()
	application := &app.App{
		Config:     common.NewDefaultConfig(),
		Logger:     logger,
		APIHandler: handlers.NewAPIHandler(logger),
	}
	s := &Server{app: application}
	return s.setupRoutes()
}

func TestPathSegments(t *testing.T) {
	cases := []struct {
		path string
		want []string
	}{
		{"/api/stores/abc", []string{"abc"}},
		{"/api/stores/abc/", []string{"abc"}},
		{"/api/stores/abc/documents", []string{"abc", "documents"}},
		{"/api/stores/abc/documents/d1", []string{"abc", "documents", "d1"}},
		{"/api/stores/abc/upload", []string{"abc", "upload"}},
		{"/api/stores/", nil},
	}
	for _, tc := range cases {
		got := pathSegments(tc.path, "/api/stores/")
		assert.Equal(t, tc.want, got, "path %s", tc.path)
	}
}

func TestRouting(t *testing.T) {
	router := newRouterForTest()

	t.Run("System endpoints respond", func(t *testing.T) {
		for _, path := range []string{"/api/version", "/api/health", "/api/models", "/api/presets"} {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
			assert.Equal(t, http.StatusOK, rec.Code, "GET %s", path)
		}
	})

	t.Run("Unknown API routes yield 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/unknown", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Store subroutes gate methods", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("PUT", "/api/stores/abc", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/stores/abc/upload", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/stores/abc/documents", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("Store subroutes reject unknown segments", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/stores/abc/unknown", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/stores/", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Operation route requires an id and GET", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/operations/", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("DELETE", "/api/operations/op1", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("Version payload carries the build info", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/version", nil))
		assert.Contains(t, rec.Body.String(), `"version"`)
	})
}
