package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "channelhub/internal/platform/net/http"
	"channelhub/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestNormalize_FillsServersAndErrors(t *testing.T) {
	spec := map[string]any{
		"swagger": "2.0",
		"paths": map[string]any{
			"/distributions": map[string]any{
				"post": map[string]any{"responses": map[string]any{"400": "custom"}},
			},
		},
	}
	normalize(spec, "/api/v1")

	require.Equal(t, "3.0.3", spec["openapi"])
	require.NotContains(t, spec, "swagger")
	require.Equal(t, []any{map[string]any{"url": "/api/v1"}}, spec["servers"])

	resps := spec["paths"].(map[string]any)["/distributions"].(map[string]any)["post"].(map[string]any)["responses"].(map[string]any)
	require.Equal(t, "custom", resps["400"], "existing responses are kept")
	require.Contains(t, resps, "500")
	require.Contains(t, spec["components"].(map[string]any)["schemas"], "ErrorResponse")
}

func TestNormalize_KeepsOAS30(t *testing.T) {
	spec := map[string]any{"openapi": "3.0.1", "servers": []any{"x"}}
	normalize(spec, "/api/v1")
	require.Equal(t, "3.0.1", spec["openapi"])
	require.Equal(t, []any{"x"}, spec["servers"])

	spec = map[string]any{"openapi": "3.1.0"}
	normalize(spec, "/api/v1")
	require.Equal(t, "3.0.3", spec["openapi"])
}

func TestMount(t *testing.T) {
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), true)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var spec map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &spec))
	require.Equal(t, "Channelhub API", spec["info"].(map[string]any)["title"])
	require.Contains(t, spec["paths"], "/distributions")

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	require.Equal(t, http.StatusPermanentRedirect, rr.Code)

	off := chi.NewRouter()
	Mount(phttp.AdaptChi(off), false)
	rr = httptest.NewRecorder()
	off.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServeDocJSON_BadSpec(t *testing.T) {
	testkit.Swap(t, &docReader, func() string { return "{" })
	rr := httptest.NewRecorder()
	serveDocJSON()(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
}
