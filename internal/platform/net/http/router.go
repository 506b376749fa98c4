package http

import "net/http"

// Handler is a plain handler func, routes take it directly
type Handler = func(http.ResponseWriter, *http.Request)

// Router is what modules mount against, so they never see chi
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Handle(path string, h http.Handler)

	// Use must be called before the first route on this router
	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	Mux() http.Handler
}
