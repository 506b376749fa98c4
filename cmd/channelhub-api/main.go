// @title         Channelhub API
// @version       0.1.0
// @description   Content search, channel lookup and content distribution
// @BasePath      /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"channelhub/internal/core/version"
	"channelhub/internal/platform/auth"
	"channelhub/internal/platform/config"
	"channelhub/internal/platform/logger"
	phttp "channelhub/internal/platform/net/http"
	"channelhub/internal/platform/store"

	"channelhub/internal/services/api"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("CORE_PG_")
	chCfg := root.Prefix("CORE_CH_")
	rdsCfg := root.Prefix("CORE_RDS_")
	authCfg := root.Prefix("CORE_AUTH_")

	// logger first so config warnings have somewhere to go
	l := logger.Get()
	l.Info().Str("build", version.Info("channelhub-api").String()).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.Config{
		AppName: "channelhub-api",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 8)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("TRACE", false),
		},
		CH: store.CHConfig{
			Enabled:  chCfg.MayBool("ENABLED", false),
			Addr:     chCfg.MayString("ADDR", "127.0.0.1:9000"),
			Database: chCfg.MayString("DATABASE", "channelhub"),
			User:     chCfg.MayString("USER", "default"),
			Password: chCfg.MayString("PASSWORD", ""),
			Role:     "api",
			Tag:      "audit",
		},
		RDS: store.RedisConfig{
			Enabled: rdsCfg.MayBool("ENABLED", false),
			URL:     rdsCfg.MayString("URL", "redis://127.0.0.1:6379/0"),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("opening store")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("closing store")
		}
	}()

	signer, err := auth.NewHS256(
		[]byte(authCfg.MustString("SECRET")),
		authCfg.MayString("ISSUER", "channelhub"),
		authCfg.MayDuration("TTL", 0),
	)
	if err != nil {
		l.Panic().Err(err).Msg("auth signer")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// http server (reads CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	api.Mount(srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Logger:         l,
		Signer:         signer,
		Registry:       reg,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("bye")
}
