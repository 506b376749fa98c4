package api

import (
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"channelhub/internal/platform/auth"
	"channelhub/internal/platform/config"
	phttp "channelhub/internal/platform/net/http"
	"channelhub/internal/platform/store"
	"channelhub/internal/platform/testkit/sqlfake"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func mount(t *testing.T, signer *auth.Signer, reg *prometheus.Registry) *chi.Mux {
	t.Helper()
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), Options{
		Config:   config.New(),
		Store:    &store.Store{PG: sqlfake.New()},
		Signer:   signer,
		Registry: reg,
	})
	return mux
}

func do(mux *chi.Mux, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestMount_RoutesUnderAPIV1(t *testing.T) {
	mux := mount(t, nil, nil)

	rr := do(mux, stdhttp.MethodGet, "/api/v1/meta/health", "", "")
	require.Equal(t, stdhttp.StatusOK, rr.Code, rr.Body.String())
	require.Contains(t, rr.Body.String(), "channelhub-api")

	rr = do(mux, stdhttp.MethodGet, "/api/v1/meta/ready", "", "")
	require.Equal(t, stdhttp.StatusOK, rr.Code, rr.Body.String())
}

func TestMount_DistributionsRequireToken(t *testing.T) {
	signer, err := auth.NewHS256([]byte("test-secret"), "channelhub", time.Hour)
	require.NoError(t, err)
	mux := mount(t, signer, nil)

	body := `{"contentId":"v1","channels":["la"],"category":"news"}`
	rr := do(mux, stdhttp.MethodPost, "/api/v1/distributions", "", body)
	require.Equal(t, stdhttp.StatusUnauthorized, rr.Code, rr.Body.String())

	rr = do(mux, stdhttp.MethodPost, "/api/v1/distributions", "not-a-jwt", body)
	require.Equal(t, stdhttp.StatusUnauthorized, rr.Code, rr.Body.String())

	rr = do(mux, stdhttp.MethodGet, "/api/v1/distributions/v1", "", "")
	require.Equal(t, stdhttp.StatusUnauthorized, rr.Code, rr.Body.String())
}

func TestMount_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	mux := mount(t, nil, reg)

	do(mux, stdhttp.MethodGet, "/api/v1/meta/health", "", "")
	rr := do(mux, stdhttp.MethodGet, "/metrics", "", "")
	require.Equal(t, stdhttp.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `route="/api/v1/meta/health"`)
}

func TestAuthPort_NilSignerStaysNil(t *testing.T) {
	require.Nil(t, AuthPort(nil))
}
