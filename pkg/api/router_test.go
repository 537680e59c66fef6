package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRouterRoutes(t *testing.T) {
	r, _ := setupTestRouter(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"health", "GET", "/api/health", "", http.StatusOK},
		{"list animals", "GET", "/api/animals", "", http.StatusOK},
		{"list inventory", "GET", "/api/inventory", "", http.StatusOK},
		{"list medical checks", "GET", "/api/medical-checks", "", http.StatusOK},
		{"create cage", "POST", "/api/cages", `{"id":"C1","name":"Den"}`, http.StatusOK},
		{"update cage", "PUT", "/api/cages/C1", `{"name":"Big Den"}`, http.StatusOK},
		{"delete cage", "DELETE", "/api/cages/C1", "", http.StatusOK},
		{"stats", "GET", "/api/dashboard/stats", "", http.StatusOK},
		{"zoo info missing", "GET", "/api/zoo-info", "", http.StatusNotFound},
		{"no visitor update", "PUT", "/api/visitors/V1", `{"name":"x"}`, http.StatusNotFound},
		{"no visitor delete", "DELETE", "/api/visitors/V1", "", http.StatusNotFound},
		{"no ticket sale update", "PUT", "/api/ticket-sales/S1", `{}`, http.StatusNotFound},
		{"no ticket sale delete", "DELETE", "/api/ticket-sales/S1", "", http.StatusNotFound},
		{"unknown resource", "GET", "/api/unicorns", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestRouterRequestID(t *testing.T) {
	r, _ := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/api/zoo-info", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "req-42", decodeMap(t, w)["requestId"])
}

func TestRouterCORSPreflight(t *testing.T) {
	r, _ := setupTestRouter(t)

	req := httptest.NewRequest("OPTIONS", "/api/animals", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestRouterCORSAllowList(t *testing.T) {
	h, _ := setupTestHandler(t)
	r := NewRouter(h, RouterConfig{CORSAllowOrigins: []string{"https://zoo.example"}}, zap.NewNop())

	tests := []struct {
		origin string
		want   string
	}{
		{"https://zoo.example", "https://zoo.example"},
		{"https://evil.example", ""},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/health", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRouterRecoversFromPanic(t *testing.T) {
	r, _ := setupTestRouter(t)
	r.GET("/api/boom", func(*gin.Context) { panic("boom") })

	req := httptest.NewRequest("GET", "/api/boom", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "ERR_INTERNAL", decodeMap(t, w)["code"])
}
