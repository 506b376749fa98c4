package middleware

import (
	"net/http"
	"time"

	pstrings "channelhub/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// chi middleware re-exported so modules never import chi directly
var (
	RequestID       = chimw.RequestID
	RealIP          = chimw.RealIP
	NoCache         = chimw.NoCache
	RedirectSlashes = chimw.RedirectSlashes
	StripSlashes    = chimw.StripSlashes
)

// Timeout cancels the request context after d
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// Heartbeat answers GET path with 200 ahead of routing
func Heartbeat(path string) func(http.Handler) http.Handler { return chimw.Heartbeat(path) }

// Compress negotiates gzip or deflate at the given flate level
func Compress(level int) func(http.Handler) http.Handler { return chimw.Compress(level) }

// CORSOptions lists what browsers may send and read, empty fields take the API defaults
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

var corsDefaults = CORSOptions{
	AllowedOrigins: []string{"*"},
	AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
	// 429 carries Retry-After, which browsers hide unless exposed
	ExposedHeaders: []string{"Retry-After", "X-Request-ID"},
}

// CORS applies o over the API defaults
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   pstrings.IfEmpty(o.AllowedOrigins, corsDefaults.AllowedOrigins),
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, corsDefaults.AllowedMethods),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, corsDefaults.AllowedHeaders),
		ExposedHeaders:   pstrings.IfEmpty(o.ExposedHeaders, corsDefaults.ExposedHeaders),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
