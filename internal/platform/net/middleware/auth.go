package middleware

import (
	"net/http"
	"strings"

	"channelhub/internal/platform/logger"
	pnet "channelhub/internal/platform/net"
)

// AuthPort resolves the caller from a request
type AuthPort interface {
	// Parse returns a user id and role from the request or an error
	Parse(r *http.Request) (userID string, role string, err error)
}

// Auth requires a valid caller, nil port passes through
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return authenticate(p, write, false)
}

// OptionalAuth resolves the caller when an Authorization header is present
// requests without one continue as guests, malformed tokens are still rejected
func OptionalAuth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return authenticate(p, write, true)
}

func authenticate(p AuthPort, write func(w http.ResponseWriter, status int, body any), optional bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			if optional && strings.TrimSpace(r.Header.Get("Authorization")) == "" {
				next.ServeHTTP(w, r)
				return
			}
			uid, role, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithUser(r.Context(), uid, role)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
