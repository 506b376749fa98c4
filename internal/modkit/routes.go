package modkit

import (
	"net/http"

	"channelhub/internal/modkit/httpkit"
	str "channelhub/internal/platform/strings"
)

// Routes implements Module for a constructor that embeds it
type Routes struct {
	name      string
	prefix    string
	mw        []func(http.Handler) http.Handler
	subrouter func(httpkit.Router) httpkit.Router
	register  []func(httpkit.Router)
	ports     any
}

// Routes turns the build into a mountable module. own registers the module's routes
// and runs before any WithRegister hook, exported is what Ports returns.
func (b Built) Routes(exported any, own func(httpkit.Router)) Routes {
	return Routes{
		name:      str.MustString(b.Name, "module name"),
		prefix:    str.MustPrefix(b.Prefix),
		mw:        b.Mw,
		subrouter: b.Subrouter,
		register:  []func(httpkit.Router){own, b.Register},
		ports:     exported,
	}
}

// MountRoutes registers the module under its prefix behind its own middleware
func (m Routes) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(sub httpkit.Router) {
		for _, mw := range m.mw {
			sub.Use(mw)
		}
		sub = m.subrouter(sub)
		for _, reg := range m.register {
			reg(sub)
		}
	})
}

// Name is the module name used in logs and panics
func (m Routes) Name() string { return m.name }

// Prefix is the normalized mount path
func (m Routes) Prefix() string { return m.prefix }

// Middlewares are the module-scoped middleware in mount order
func (m Routes) Middlewares() []func(http.Handler) http.Handler { return m.mw }

// Ports is what the module exports to others
func (m Routes) Ports() any { return m.ports }
