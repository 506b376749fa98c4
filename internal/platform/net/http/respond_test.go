package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "channelhub/internal/platform/errors"
	lumnet "channelhub/internal/platform/net"
	phttp "channelhub/internal/platform/net/http"
)

func serve(t *testing.T, resp phttp.Response) (*httptest.ResponseRecorder, phttp.Envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/distributions/v1", nil)
	req = req.WithContext(lumnet.WithRequest(req.Context(), "rid-7"))
	rr := httptest.NewRecorder()

	phttp.Handle(func(*http.Request) phttp.Response { return resp })(rr, req)

	var env phttp.Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return rr, env
}

func TestHandle_OKEnvelope(t *testing.T) {
	rr, env := serve(t, phttp.OK(map[string]any{"total": 2}))

	if rr.Code != http.StatusOK || env.StatusCode != http.StatusOK || env.Status != "OK" {
		t.Fatalf("code=%d env=%+v", rr.Code, env)
	}
	if env.RequestID != "rid-7" {
		t.Fatalf("request id = %q", env.RequestID)
	}
	if m, _ := env.Data.(map[string]any); m["total"] != float64(2) {
		t.Fatalf("data = %#v", env.Data)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content-type = %q", ct)
	}
}

func TestHandle_ErrorEnvelope(t *testing.T) {
	err := perr.WithField(perr.Validationf("category is required"), "category")
	rr, env := serve(t, phttp.Error(err))

	if rr.Code != http.StatusBadRequest || env.StatusCode != http.StatusBadRequest {
		t.Fatalf("code=%d env=%+v", rr.Code, env)
	}
	if env.Code != perr.ErrorCodeValidation || env.Error != "category is required" || env.Data != nil {
		t.Fatalf("env = %+v", env)
	}
}

func TestHandle_ForeignErrorIs500(t *testing.T) {
	rr, env := serve(t, phttp.Error(errors.New("boom")))
	if rr.Code != http.StatusInternalServerError || env.Code != perr.ErrorCodeUnknown || env.Error != "boom" {
		t.Fatalf("code=%d env=%+v", rr.Code, env)
	}
}

func TestHandle_StatusAndHeaders(t *testing.T) {
	rr, env := serve(t, phttp.Response{
		Status: http.StatusAccepted,
		Body:   "queued",
		Header: http.Header{"Retry-After": {"3"}},
	})
	if rr.Code != http.StatusAccepted || env.Data != "queued" {
		t.Fatalf("code=%d env=%+v", rr.Code, env)
	}
	if rr.Header().Get("Retry-After") != "3" {
		t.Fatalf("headers = %v", rr.Header())
	}

	rr, _ = serve(t, phttp.Response{Body: []string{}})
	if rr.Code != http.StatusOK {
		t.Fatalf("zero status should default to 200, got %d", rr.Code)
	}
}
