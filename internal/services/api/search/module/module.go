// Package module mounts content search under /search
package module

import (
	modkit "channelhub/internal/modkit"
	"channelhub/internal/modkit/httpkit"
	searchhttp "channelhub/internal/services/api/search/http"
	searchrepo "channelhub/internal/services/api/search/repo"
	searchsvc "channelhub/internal/services/api/search/service"
)

// Module serves /search and exports the search service port
type Module struct {
	modkit.Routes
}

// New builds the search module on deps.PG
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("search"), modkit.WithPrefix("/search")}, opts...)...)

	svc := searchsvc.New(deps.PG, searchrepo.NewPG())
	return &Module{Routes: b.Routes(adaptSearchPort{svc: svc}, func(r httpkit.Router) {
		// anonymous callers search as guests
		httpkit.Public(r, deps.Auth, func(pr httpkit.Router) {
			searchhttp.Register(pr, svc)
		})
	})}
}
