package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"

	perr "channelhub/internal/platform/errors"
	pnet "channelhub/internal/platform/net"

	"golang.org/x/time/rate"
)

// RateLimitOptions configures RateLimit
type RateLimitOptions struct {
	// RPS is the sustained rate per caller, zero disables the limiter
	RPS   float64
	Burst int
	// MaxKeys bounds the limiter table, it is reset when full
	MaxKeys int
}

// RateLimit applies a token bucket per caller
// callers are keyed by user id when authenticated, else by remote ip
func RateLimit(o RateLimitOptions, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	if o.RPS <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if o.Burst <= 0 {
		o.Burst = 1
	}
	if o.MaxKeys <= 0 {
		o.MaxKeys = 10_000
	}

	var (
		mu       sync.Mutex
		limiters = map[string]*rate.Limiter{}
	)
	get := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[key]
		if !ok {
			if len(limiters) >= o.MaxKeys {
				clear(limiters)
			}
			l = rate.NewLimiter(rate.Limit(o.RPS), o.Burst)
			limiters[key] = l
		}
		return l
	}

	retryAfter := strconv.Itoa(max(1, int(1/o.RPS)))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !get(callerKey(r)).Allow() {
				w.Header().Set("Retry-After", retryAfter)
				status, body := pnet.Error(perr.Newf(perr.ErrorCodeTooManyRequests, "too many requests"), pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func callerKey(r *http.Request) string {
	if uid := pnet.UserID(r.Context()); uid != "" {
		return "u:" + uid
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
