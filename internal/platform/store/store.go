// Package store opens the optional backends behind small interfaces repos can fake
package store

import (
	"context"
	"errors"

	"channelhub/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Store holds whichever backends Open enabled, the zero value has none
type Store struct {
	Log logger.Logger

	PG  TxRunner      // postgres, nil when disabled
	CH  Clickhouse    // clickhouse audit sink, nil when disabled
	RDS *redis.Client // redis cache, nil when disabled
}

// Row is a single result row
type Row interface {
	Scan(dest ...any) error
}

// Rows iterates a result set, callers must Close it
type Rows interface {
	Row
	Next() bool
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports what a write did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier runs SQL against a pool or an open transaction
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also run fn in a transaction,
// committed when fn returns nil and rolled back otherwise
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar write and read surface
type Clickhouse interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

// Pinger reports backend readiness
type Pinger interface{ Ping(context.Context) error }

// Open connects every backend enabled in cfg. On failure the ones already open are closed.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	var err error
	if cfg.PG.Enabled {
		s.PG, err = openPG(ctx, cfg, s.Log)
	}
	if err == nil && cfg.CH.Enabled {
		s.CH, err = openCH(ctx, cfg)
	}
	if err == nil && cfg.RDS.Enabled {
		s.RDS, err = openRDS(ctx, cfg)
	}
	if err != nil {
		_ = s.Close(ctx)
		return nil, err
	}
	return s, nil
}

// Checks returns a readiness probe per open backend, keyed pg, ch and redis
func (s *Store) Checks() map[string]func(context.Context) error {
	checks := make(map[string]func(context.Context) error, 3)
	if s == nil {
		return checks
	}
	if p, ok := s.PG.(Pinger); ok {
		checks["pg"] = p.Ping
	}
	if p, ok := s.CH.(Pinger); ok {
		checks["ch"] = p.Ping
	}
	if rc := s.RDS; rc != nil {
		checks["redis"] = func(ctx context.Context) error { return rc.Ping(ctx).Err() }
	}
	return checks
}

// Close shuts down every open backend and joins their errors
func (s *Store) Close(context.Context) error {
	var errs []error
	if s.RDS != nil {
		errs = append(errs, s.RDS.Close())
	}
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
