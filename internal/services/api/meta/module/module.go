// Package module mounts the health, readiness and build endpoints
package module

import (
	"time"

	modkit "channelhub/internal/modkit"
	"channelhub/internal/modkit/httpkit"

	metahttp "channelhub/internal/services/api/meta/http"
)

// ServiceName is reported by the health, version and service endpoints
const ServiceName = "channelhub-api"

// Module serves /meta, it exports no ports
type Module struct {
	modkit.Routes
}

// New builds the meta module, uptime counts from this call
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	started := time.Now()
	return &Module{Routes: b.Routes(nil, func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: ServiceName,
			StartedAt:   started,
			Checks:      deps.Checks,
		})
	})}
}
