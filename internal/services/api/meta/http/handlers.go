// Package http serves the /meta probes
package http

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"channelhub/internal/core/version"
	"channelhub/internal/modkit/httpkit"

	"golang.org/x/sync/errgroup"
)

// ReadyTimeout is the budget shared by all readiness probes
const ReadyTimeout = 2 * time.Second

// Deps feeds the meta handlers
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	// Checks are readiness probes by backend name
	Checks map[string]func(context.Context) error
	Now    func() time.Time
}

// Register adds /health, /ready, /version and /service to r
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	h := meta{d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

type meta struct{ Deps }

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok" example:"true"`
	Service string `json:"service" example:"channelhub-api"`
	Started string `json:"started" example:"2026-10-01T13:00:00Z"`
	Now     string `json:"now" example:"2026-10-01T13:05:00Z"`
}

// ReadyCheck is one probe result, Status is ok or fail
type ReadyCheck struct {
	Name   string `json:"name" example:"pg"`
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse is ok when every probe passes, fail when none do and degraded in between
type ReadyResponse struct {
	Status string       `json:"status" example:"degraded"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now" example:"2026-10-01T13:05:00Z"`
}

// ServiceResponse reports uptime in seconds
type ServiceResponse struct {
	Name    string `json:"name" example:"channelhub-api"`
	Started string `json:"started" example:"2026-10-01T13:00:00Z"`
	Uptime  int64  `json:"uptime" example:"300"`
}

// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h meta) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.ServiceName, Started: stamp(h.StartedAt), Now: stamp(h.Now())}, nil
}

// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h meta) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), ReadyTimeout)
	defer cancel()

	var (
		g      errgroup.Group // plain group, one failure must not cancel the rest
		mu     sync.Mutex
		checks = []ReadyCheck{}
		failed int
	)
	for name, probe := range h.Checks {
		g.Go(func() error {
			c := ReadyCheck{Name: name, Status: "ok"}
			err := probe(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				c.Status, c.Error = "fail", err.Error()
				failed++
			}
			checks = append(checks, c)
			return nil
		})
	}
	_ = g.Wait()
	slices.SortFunc(checks, func(a, b ReadyCheck) int { return strings.Compare(a.Name, b.Name) })

	status := "degraded"
	switch failed {
	case 0:
		status = "ok"
	case len(checks):
		status = "fail"
	}
	return ReadyResponse{Status: status, Checks: checks, Now: stamp(h.Now())}, nil
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h meta) version(*http.Request) (any, error) {
	return version.Info(h.ServiceName), nil
}

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h meta) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.ServiceName,
		Started: stamp(h.StartedAt),
		Uptime:  int64(h.Now().Sub(h.StartedAt) / time.Second),
	}, nil
}
