package middleware

import (
	"net/http"
	"runtime/debug"

	perr "channelhub/internal/platform/errors"
	pnet "channelhub/internal/platform/net"
)

// RecoverJSON turns a handler panic into a logged stack and a 500 envelope.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func RecoverJSON(write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}

				reqID := pnet.RequestID(r.Context())
				requestLogger(r.Context()).Error().
					Str("request_id", reqID).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", v).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				if reqID != "" {
					w.Header().Set("X-Request-ID", reqID)
				}
				status, body := pnet.Error(perr.PanicErrf("internal error"), reqID)
				write(w, status, body)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
