// Package httpkit is the HTTP surface modules build routes with.
// It re-exports the platform types so modules depend on one package.
package httpkit

import (
	"net/http"

	phttp "channelhub/internal/platform/net/http"
)

type (
	// Envelope is the JSON body of every response
	Envelope = phttp.Envelope

	// Response is the return-style response type
	Response = phttp.Response

	// Handler is a plain handler func
	Handler = phttp.Handler

	// Router is the chi-free router modules mount on
	Router = phttp.Router
)

// Call adapts a body-less handler, a returned Response is written as is
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}
