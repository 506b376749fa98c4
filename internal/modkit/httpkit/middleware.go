package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "channelhub/internal/platform/net/http"
	"channelhub/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack, zero values pick the defaults
type StackOptions struct {
	CORS    middleware.CORSOptions
	Timeout time.Duration
	// SlowLog marks access log lines at warn, negative disables
	SlowLog time.Duration
}

// Stack defaults
const (
	DefaultTimeout = 30 * time.Second
	DefaultSlowLog = 500 * time.Millisecond
)

// CommonStack returns the middleware every /api/v1 route runs behind
// compose with auth and rate limiting per route group
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.SlowLog == 0 {
		o.SlowLog = DefaultSlowLog
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		middleware.RecoverJSON(phttp.JSON),
		middleware.NoCache,
		middleware.AccessLog(o.SlowLog),
		middleware.CORS(o.CORS),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes,
		middleware.StripSlashes,
		middleware.Timeout(o.Timeout),
	}
}

// Auth wires the auth middleware to the platform JSON writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}

// OptionalAuth is Auth that lets anonymous requests through as guests
func OptionalAuth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.OptionalAuth(p, phttp.JSON)
}

// RateLimit wires the per caller limiter to the platform JSON writer
func RateLimit(o middleware.RateLimitOptions) func(http.Handler) http.Handler {
	return middleware.RateLimit(o, phttp.JSON)
}
