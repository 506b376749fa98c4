package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"channelhub/internal/platform/net"
	"channelhub/internal/platform/net/middleware"
)

func TestRateLimit_DisabledIsIdentity(t *testing.T) {
	mw := middleware.RateLimit(middleware.RateLimitOptions{}, writeStub)
	for i := 0; i < 50; i++ {
		if rr, _ := serve(mw, httptest.NewRequest(http.MethodPost, "/", nil)); rr.Code != http.StatusOK {
			t.Fatalf("request %d limited with limiter disabled", i)
		}
	}
}

func TestRateLimit_PerCaller(t *testing.T) {
	mw := middleware.RateLimit(middleware.RateLimitOptions{RPS: 0.001, Burst: 2}, writeStub)

	reqFrom := func(addr, uid string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.RemoteAddr = addr
		if uid != "" {
			r = r.WithContext(net.WithUser(r.Context(), uid, "member"))
		}
		return r
	}

	for i := 0; i < 2; i++ {
		if rr, _ := serve(mw, reqFrom("10.0.0.1:5000", "")); rr.Code != http.StatusOK {
			t.Fatalf("burst request %d limited", i)
		}
	}
	rr, _ := serve(mw, reqFrom("10.0.0.1:6000", ""))
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Fatal("missing Retry-After")
	}

	// same ip but an authenticated user has its own bucket
	if rr, _ := serve(mw, reqFrom("10.0.0.1:5000", "7")); rr.Code != http.StatusOK {
		t.Fatalf("user bucket should be fresh, got %d", rr.Code)
	}
	if rr, _ := serve(mw, reqFrom("10.0.0.2:5000", "")); rr.Code != http.StatusOK {
		t.Fatalf("other ip should be fresh, got %d", rr.Code)
	}
}
