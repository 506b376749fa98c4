package service

import (
	"context"
	"time"

	"channelhub/internal/platform/logger"
	"channelhub/internal/platform/metrics"
	"channelhub/internal/services/api/channels/domain"
)

// Observer receives channel search lifecycle events
type Observer interface {
	Started(ctx context.Context, q string)
	Failed(ctx context.Context, searchType string, err error)
	Finished(ctx context.Context, res domain.ChannelSearchResult, elapsed time.Duration)
}

// LogObserver logs with zerolog and counts searches by type and outcome
type LogObserver struct{}

// Started implements Observer
func (LogObserver) Started(ctx context.Context, q string) {
	logger.C(ctx).Debug().Str("q", q).Msg("channel search started")
}

// Failed implements Observer
func (LogObserver) Failed(ctx context.Context, searchType string, err error) {
	logger.C(ctx).Warn().Err(err).Str("type", searchType).Msg("channel search failed")
	metrics.ChannelSearchesTotal.WithLabelValues(searchType, "error").Inc()
}

// Finished implements Observer
func (LogObserver) Finished(ctx context.Context, res domain.ChannelSearchResult, elapsed time.Duration) {
	ev := logger.C(ctx).Info().
		Str("type", res.SearchType).
		Int("channels", len(res.Channels)).
		Dur("elapsed", elapsed)
	if res.SearchType == domain.SearchTypeZip {
		ev = ev.Str("zip", res.Zip).Int("radius", res.Radius).Bool("fallback", res.Fallback)
	}
	ev.Msg("channel search done")

	outcome := "ok"
	switch {
	case res.Fallback:
		outcome = "fallback"
	case len(res.Channels) == 0:
		outcome = "empty"
	}
	metrics.ChannelSearchesTotal.WithLabelValues(res.SearchType, outcome).Inc()
}
