// Package module mounts content distribution under /distributions
package module

import (
	modkit "channelhub/internal/modkit"
	"channelhub/internal/modkit/httpkit"
	"channelhub/internal/modkit/repokit"
	"channelhub/internal/platform/net/middleware"
	"channelhub/internal/services/api/distribute/audit"
	dhttp "channelhub/internal/services/api/distribute/http"
	drepo "channelhub/internal/services/api/distribute/repo"
	dsvc "channelhub/internal/services/api/distribute/service"
)

// Module serves /distributions behind auth
type Module struct {
	modkit.Routes
}

// New builds the distribution module. Ports.Channels must be injected with modkit.WithPorts.
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("distribute"),
		modkit.WithPrefix("/distributions"),
	}, opts...)...)

	in, _ := b.Ports.(Ports)
	if in.Channels == nil {
		panic("distribute module needs Ports.Channels from the channels module")
	}

	cfg := FromConfig(deps.Cfg)
	db := deps.PG
	if cfg.LockTimeout > 0 {
		db = repokit.WithBeginHooks(db, drepo.LockTimeout(cfg.LockTimeout))
	}

	var svcOpts []dsvc.Option
	if cfg.Audit && deps.CH != nil {
		svcOpts = append(svcOpts, dsvc.WithAudit(audit.NewClickHouse(deps.CH)))
	}
	svc := dsvc.New(db, drepo.NewPG(), in.Channels, svcOpts...)

	limit := httpkit.RateLimit(middleware.RateLimitOptions{RPS: cfg.RateRPS, Burst: cfg.RateBurst})
	return &Module{Routes: b.Routes(adaptDistributePort{svc: svc}, func(r httpkit.Router) {
		httpkit.Protected(r, deps.Auth, func(pr httpkit.Router) {
			dhttp.Register(pr, svc, limit)
		})
	})}
}
