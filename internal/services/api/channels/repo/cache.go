package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"channelhub/internal/core/geo"
	"channelhub/internal/platform/logger"
	"channelhub/internal/platform/metrics"

	"github.com/redis/go-redis/v9"
)

const geocodeKeyPrefix = "channelhub:geocode:"

// KV is the slice of the redis client the geocode cache needs
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// CachedLookup is a read-through redis cache in front of a geo.Lookup
// Only found points are stored. Redis failures fall through to the inner lookup.
type CachedLookup struct {
	inner geo.Lookup
	kv    KV
	ttl   time.Duration
}

// NewCachedLookup wraps inner with kv, entries expire after ttl
func NewCachedLookup(inner geo.Lookup, kv KV, ttl time.Duration) *CachedLookup {
	return &CachedLookup{inner: inner, kv: kv, ttl: ttl}
}

// GeocodeExact implements geo.Lookup
func (c *CachedLookup) GeocodeExact(ctx context.Context, code string) (geo.Point, bool, error) {
	return c.through(ctx, "exact:"+code, func(ctx context.Context) (geo.Point, bool, error) {
		return c.inner.GeocodeExact(ctx, code)
	})
}

// GeocodeByPrefix implements geo.Lookup
func (c *CachedLookup) GeocodeByPrefix(ctx context.Context, prefix string) (geo.Point, bool, error) {
	return c.through(ctx, "prefix:"+prefix, func(ctx context.Context) (geo.Point, bool, error) {
		return c.inner.GeocodeByPrefix(ctx, prefix)
	})
}

func (c *CachedLookup) through(ctx context.Context, key string, load func(context.Context) (geo.Point, bool, error)) (geo.Point, bool, error) {
	key = geocodeKeyPrefix + key

	data, err := c.kv.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var p geo.Point
		if uerr := json.Unmarshal(data, &p); uerr == nil {
			metrics.GeocodeCacheTotal.WithLabelValues("hit").Inc()
			return p, true, nil
		}
		logger.C(ctx).Warn().Str("key", key).Msg("discarding unreadable geocode cache entry")
		metrics.GeocodeCacheTotal.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		metrics.GeocodeCacheTotal.WithLabelValues("miss").Inc()
	default:
		logger.C(ctx).Warn().Err(err).Str("key", key).Msg("geocode cache read failed")
		metrics.GeocodeCacheTotal.WithLabelValues("error").Inc()
	}

	p, ok, err := load(ctx)
	if err != nil || !ok {
		return p, ok, err
	}
	if data, err := json.Marshal(p); err == nil {
		if err := c.kv.Set(ctx, key, data, c.ttl).Err(); err != nil {
			logger.C(ctx).Warn().Err(err).Str("key", key).Msg("geocode cache write failed")
		}
	}
	return p, true, nil
}
