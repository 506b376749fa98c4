// Package api assembles the modules into the /api/v1 surface
package api

import (
	"channelhub/internal/platform/auth"
	"channelhub/internal/platform/config"
	"channelhub/internal/platform/logger"
	"channelhub/internal/platform/metrics"
	phttp "channelhub/internal/platform/net/http"
	"channelhub/internal/platform/net/middleware"
	"channelhub/internal/platform/store"

	"channelhub/internal/modkit"
	"channelhub/internal/modkit/httpkit"
	"channelhub/internal/modkit/module"
	"channelhub/internal/modkit/swaggerkit"

	chmod "channelhub/internal/services/api/channels/module"
	distmod "channelhub/internal/services/api/distribute/module"
	metamod "channelhub/internal/services/api/meta/module"
	searchmod "channelhub/internal/services/api/search/module"

	"github.com/prometheus/client_golang/prometheus"
)

// Options carry what Mount needs from main
type Options struct {
	// Config is the root view, modules take their own prefixes from it
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger

	// Signer verifies bearer tokens, nil leaves every caller a guest
	Signer *auth.Signer

	// Registry receives the collectors served on /metrics, nil disables metrics
	Registry *prometheus.Registry

	EnableSwagger  bool
	EnableProfiler bool
}

// AuthPort adapts a signer to the auth middleware, nil stays nil
func AuthPort(s *auth.Signer) middleware.AuthPort {
	if s == nil {
		return nil
	}
	return httpkit.NewPortFunc(s.Parse)
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	st := opt.Store
	if st == nil {
		st = &store.Store{}
	}

	// shared deps for modules
	deps := modkit.Deps{
		Cfg:    opt.Config,
		PG:     st.PG,
		CH:     st.CH,
		RDS:    st.RDS,
		Auth:   AuthPort(opt.Signer),
		Checks: st.Checks(),
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// channels owns the channel repository, distribute borrows it to resolve targets
	channels := chmod.New(deps)
	lookup := distmod.ChannelsFrom(module.MustPortsOf[chmod.Ports](channels).Channels)

	mods := []module.Module{
		metamod.New(deps),
		searchmod.New(deps),
		channels,
		distmod.New(deps, modkit.WithPorts(distmod.Ports{Channels: lookup})),
	}

	if opt.Registry != nil {
		metrics.Register(opt.Registry)
		r.Use(metrics.Middleware)
		r.Handle("/metrics", metrics.Handler(opt.Registry))
	}

	apiCfg := opt.Config.Prefix("CORE_API_")
	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORS:    middleware.CORSOptions{AllowedOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil)},
		Timeout: apiCfg.MayDuration("TIMEOUT", httpkit.DefaultTimeout),
	})

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		// each module mounts under its own Prefix()
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
}
