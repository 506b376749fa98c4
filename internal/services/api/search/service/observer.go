package service

import (
	"context"
	"time"

	"channelhub/internal/core/access"
	"channelhub/internal/platform/logger"
	"channelhub/internal/platform/metrics"
)

// Observer receives search lifecycle events
type Observer interface {
	Started(ctx context.Context, q string, u access.ActingUser)
	Failed(ctx context.Context, err error)
	Finished(ctx context.Context, mode string, total int64, elapsed time.Duration)
}

// LogObserver logs with zerolog and counts searches by mode
type LogObserver struct{}

// Started implements Observer
func (LogObserver) Started(ctx context.Context, q string, u access.ActingUser) {
	logger.C(ctx).Debug().
		Str("q", q).
		Int64("actor", u.ID).
		Str("role", string(u.Role)).
		Msg("search started")
}

// Failed implements Observer
func (LogObserver) Failed(ctx context.Context, err error) {
	logger.C(ctx).Error().Err(err).Msg("search failed")
	metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
}

// Finished implements Observer
func (LogObserver) Finished(ctx context.Context, mode string, total int64, elapsed time.Duration) {
	logger.C(ctx).Info().
		Str("mode", mode).
		Int64("total", total).
		Dur("elapsed", elapsed).
		Msg("search done")
	metrics.SearchRequestsTotal.WithLabelValues(mode).Inc()
}
