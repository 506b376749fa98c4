// Package module mounts channel lookup under /channels
package module

import (
	modkit "channelhub/internal/modkit"
	"channelhub/internal/modkit/httpkit"
	chhttp "channelhub/internal/services/api/channels/http"
	chrepo "channelhub/internal/services/api/channels/repo"
	chsvc "channelhub/internal/services/api/channels/service"
)

// Module serves /channels and exports Ports
type Module struct {
	modkit.Routes
}

// New builds the channels module. The geocode cache is on when deps.RDS is set.
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("channels"), modkit.WithPrefix("/channels")}, opts...)...)

	o := FromConfig(deps.Cfg)
	svcOpts := []chsvc.Option{chsvc.WithTextLimit(o.TextLimit)}
	if deps.RDS != nil {
		svcOpts = append(svcOpts, chsvc.WithGeocodeCache(deps.RDS, o.CacheTTL))
	}

	repo := chrepo.NewPG()
	svc := chsvc.New(deps.PG, repo, svcOpts...)

	ports := Ports{Search: adaptSearchPort{svc: svc}, Channels: repo}
	return &Module{Routes: b.Routes(ports, func(r httpkit.Router) {
		chhttp.Register(r, svc)
	})}
}
