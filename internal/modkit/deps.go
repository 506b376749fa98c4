// Package modkit provides module wiring and core deps
package modkit

import (
	"context"

	"channelhub/internal/modkit/repokit"
	"channelhub/internal/platform/config"
	"channelhub/internal/platform/logger"
	"channelhub/internal/platform/net/middleware"
	"channelhub/internal/platform/store"

	"github.com/redis/go-redis/v9"
)

// Deps are the shared dependencies every module constructor receives
// optional stores stay nil when disabled
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
	RDS *redis.Client

	// Auth parses bearer tokens, nil leaves every caller a guest
	Auth middleware.AuthPort

	// Checks are the readiness probes of the opened store
	Checks map[string]func(context.Context) error
}

