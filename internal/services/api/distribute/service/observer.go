package service

import (
	"context"
	"time"

	"channelhub/internal/core/access"
	perr "channelhub/internal/platform/errors"
	"channelhub/internal/platform/logger"
	"channelhub/internal/platform/metrics"
	"channelhub/internal/services/api/distribute/domain"
)

// skip kinds
const (
	skipBundle  = "bundle"
	skipChannel = "channel"
)

// Observer receives distribution lifecycle events
type Observer interface {
	Started(ctx context.Context, in domain.DistributeInput, u access.ActingUser)
	Skipped(ctx context.Context, kind, key string)
	Failed(ctx context.Context, err error)
	Finished(ctx context.Context, res domain.DistributeResult, elapsed time.Duration)
	AuditFailed(ctx context.Context, batchID string, err error)
}

// LogObserver logs with zerolog and records distribution metrics
type LogObserver struct{}

// Started implements Observer
func (LogObserver) Started(ctx context.Context, in domain.DistributeInput, u access.ActingUser) {
	logger.C(ctx).Debug().
		Str("content", in.ContentID).
		Strs("channels", in.Channels).
		Strs("bundles", in.Bundles).
		Strs("ott", in.OTTIDs).
		Str("category", in.Category).
		Int("priority", in.Priority).
		Int64("actor", u.ID).
		Str("role", string(u.Role)).
		Msg("distribution started")
}

// Skipped implements Observer
func (LogObserver) Skipped(ctx context.Context, kind, key string) {
	logger.C(ctx).Warn().Str("kind", kind).Str("key", key).Msg("distribution target skipped")
	metrics.SkippedChannelsTotal.WithLabelValues(kind).Inc()
}

// Failed implements Observer
func (LogObserver) Failed(ctx context.Context, err error) {
	outcome := outcomeOf(err)
	ev := logger.C(ctx).Warn()
	if outcome == "error" {
		ev = logger.C(ctx).Error()
	}
	ev.Err(err).Str("outcome", outcome).Msg("distribution failed")
	metrics.DistributionBatchesTotal.WithLabelValues(outcome).Inc()
}

// Finished implements Observer
func (LogObserver) Finished(ctx context.Context, res domain.DistributeResult, elapsed time.Duration) {
	logger.C(ctx).Info().
		Str("batch", res.BatchID).
		Strs("distributed", res.DistributedChannels).
		Strs("skipped", res.SkippedChannels).
		Strs("ott", res.OTTEchoed).
		Str("category", res.Category).
		Dur("elapsed", elapsed).
		Msg("distribution done")
	metrics.DistributionBatchesTotal.WithLabelValues("ok").Inc()
	metrics.DistributionRecordsTotal.Add(float64(len(res.DistributedChannels)))
}

// AuditFailed implements Observer
func (LogObserver) AuditFailed(ctx context.Context, batchID string, err error) {
	logger.C(ctx).Error().Err(err).Str("batch", batchID).Msg("distribution audit write failed")
}

func outcomeOf(err error) string {
	switch perr.CodeOf(err) {
	case perr.ErrorCodeForbidden:
		return "forbidden"
	case perr.ErrorCodeNotFound:
		return "not_found"
	case perr.ErrorCodeValidation:
		return "invalid"
	default:
		return "error"
	}
}
