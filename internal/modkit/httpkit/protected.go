package httpkit

import (
	"channelhub/internal/platform/net/middleware"
)

// Protected groups routes that require a valid bearer token
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(gr)
	})
}

// Public groups routes open to anonymous callers
// a bearer token is still honoured when present, so owners see their own rows
func Public(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(OptionalAuth(p))
		fn(gr)
	})
}
