package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"channelhub/internal/platform/config"
	"channelhub/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

const (
	// DefaultAddr is used when ADDR is unset
	DefaultAddr = ":4000"

	// ShutdownGrace bounds the drain once the run context is canceled
	ShutdownGrace = 10 * time.Second
)

// Server owns the root chi mux and the listening http.Server
type Server struct {
	mux *chi.Mux
	srv *stdhttp.Server
}

// NewServer reads ADDR from cfg, callers pass the CORE_API_ view
func NewServer(cfg config.Conf) *Server {
	m := chi.NewRouter()
	return &Server{
		mux: m,
		srv: &stdhttp.Server{
			Addr:              cfg.MayString("ADDR", DefaultAddr),
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Router returns the Router facade over the root mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr returns the listening address
func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until ctx is canceled or listening fails, a cancel drains in flight requests
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	log.Info().Str("addr", s.srv.Addr).Msg("http listening")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("http draining")
		sctx, cancel := context.WithTimeout(context.Background(), ShutdownGrace)
		defer cancel()
		return s.srv.Shutdown(sctx)
	}
}
