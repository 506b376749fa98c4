package modkit

import (
	"net/http"

	"channelhub/internal/modkit/httpkit"
)

// Option mutates a module's build configuration
type Option func(*Built)

// WithName sets the module name used in logs
func WithName(name string) Option {
	return func(b *Built) { b.Name = name }
}

// WithPrefix mounts a module under a path prefix
func WithPrefix(prefix string) Option {
	return func(b *Built) { b.Prefix = prefix }
}

// WithMiddlewares appends per module middleware, first added runs outermost
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects ports another module exports, the concrete type belongs to the receiving module
func WithPorts[T any](p T) Option {
	return func(b *Built) { b.Ports = p }
}

// WithSubrouter wraps the module router before routes are registered
func WithSubrouter(fn func(httpkit.Router) httpkit.Router) Option {
	return func(b *Built) { b.Subrouter = fn }
}

// WithRegister adds routes next to the ones the module registers itself
func WithRegister(fn func(httpkit.Router)) Option {
	return func(b *Built) { b.Register = fn }
}
