package serverhttp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"match-service/internal/config"
	matchHnd "match-service/internal/match/handler"
	"match-service/internal/match/model"
	"match-service/internal/match/service"
	"match-service/internal/metrics"
	"match-service/internal/reference"
)

type noTables struct{}

func (noTables) FetchTables(context.Context, int) ([]*model.Table, error) { return nil, nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	h := &matchHnd.Handler{
		Engine:      service.New(reference.New(reference.Snapshot{}, reference.DefaultKeywords()), zerolog.Nop()),
		Fetcher:     noTables{},
		Metrics:     metrics.New(reg),
		MaxUploadMB: 1,
		Log:         zerolog.Nop(),
	}
	cfg := config.Config{AllowOrigins: []string{"*"}, MaxUploadMB: 1}
	return NewRouter(cfg, zerolog.Nop(), h, metrics.Handler(reg))
}

func TestRouter(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		method, path string
		code         int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/get-match/1", http.StatusOK},
		{http.MethodPost, "/api/get-match-from-file/", http.StatusBadRequest},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.code, w.Code, tc.path)
	}
}

func TestRouter_HealthBody(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
