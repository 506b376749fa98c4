package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"channelhub/internal/core/geo"

	"github.com/redis/go-redis/v9"
)

type memKV struct {
	data    map[string]string
	getErr  error
	setErr  error
	ttls    map[string]time.Duration
	getHits int
}

func newMemKV() *memKV { return &memKV{data: map[string]string{}, ttls: map[string]time.Duration{}} }

func (m *memKV) Get(_ context.Context, key string) *redis.StringCmd {
	m.getHits++
	if m.getErr != nil {
		return redis.NewStringResult("", m.getErr)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memKV) Set(_ context.Context, key string, value any, exp time.Duration) *redis.StatusCmd {
	if m.setErr != nil {
		return redis.NewStatusResult("", m.setErr)
	}
	m.data[key] = string(value.([]byte))
	m.ttls[key] = exp
	return redis.NewStatusResult("OK", nil)
}

type countingLookup struct {
	exact, prefix int
	points        map[string]geo.Point
	err           error
}

func (c *countingLookup) GeocodeExact(_ context.Context, code string) (geo.Point, bool, error) {
	c.exact++
	p, ok := c.points[code]
	return p, ok, c.err
}

func (c *countingLookup) GeocodeByPrefix(_ context.Context, prefix string) (geo.Point, bool, error) {
	c.prefix++
	p, ok := c.points[prefix+"*"]
	return p, ok, c.err
}

func TestCachedLookup_ReadThrough(t *testing.T) {
	inner := &countingLookup{points: map[string]geo.Point{"90210": {Lat: 34.09, Lng: -118.41}}}
	kv := newMemKV()
	c := NewCachedLookup(inner, kv, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		p, ok, err := c.GeocodeExact(ctx, "90210")
		if err != nil || !ok || p.Lat != 34.09 {
			t.Fatalf("round %d: p=%v ok=%v err=%v", i, p, ok, err)
		}
	}
	if inner.exact != 1 {
		t.Fatalf("inner consulted %d times, want 1", inner.exact)
	}
	if ttl := kv.ttls[geocodeKeyPrefix+"exact:90210"]; ttl != time.Hour {
		t.Fatalf("ttl = %v", ttl)
	}
}

func TestCachedLookup_MissesAreNotStored(t *testing.T) {
	inner := &countingLookup{}
	kv := newMemKV()
	c := NewCachedLookup(inner, kv, time.Minute)

	for i := 0; i < 2; i++ {
		if _, ok, err := c.GeocodeByPrefix(context.Background(), "999"); ok || err != nil {
			t.Fatalf("ok=%v err=%v", ok, err)
		}
	}
	if inner.prefix != 2 || len(kv.data) != 0 {
		t.Fatalf("prefix calls=%d cached=%d", inner.prefix, len(kv.data))
	}
}

func TestCachedLookup_RedisDownFallsThrough(t *testing.T) {
	inner := &countingLookup{points: map[string]geo.Point{"902*": {Lat: 1, Lng: 2}}}
	kv := newMemKV()
	kv.getErr = errors.New("dial tcp: refused")
	kv.setErr = kv.getErr

	p, ok, err := NewCachedLookup(inner, kv, time.Minute).GeocodeByPrefix(context.Background(), "902")
	if err != nil || !ok || p != (geo.Point{Lat: 1, Lng: 2}) {
		t.Fatalf("p=%v ok=%v err=%v", p, ok, err)
	}
}

func TestCachedLookup_CorruptEntryReloads(t *testing.T) {
	inner := &countingLookup{points: map[string]geo.Point{"10001": {Lat: 40.75, Lng: -73.99}}}
	kv := newMemKV()
	kv.data[geocodeKeyPrefix+"exact:10001"] = "{not json"

	p, ok, err := NewCachedLookup(inner, kv, time.Minute).GeocodeExact(context.Background(), "10001")
	if err != nil || !ok || p.Lat != 40.75 || inner.exact != 1 {
		t.Fatalf("p=%v ok=%v err=%v calls=%d", p, ok, err, inner.exact)
	}
	if kv.data[geocodeKeyPrefix+"exact:10001"] == "{not json" {
		t.Fatal("corrupt entry was not replaced")
	}
}

func TestCachedLookup_InnerErrorSurfaces(t *testing.T) {
	boom := errors.New("boom")
	inner := &countingLookup{err: boom}
	if _, _, err := NewCachedLookup(inner, newMemKV(), time.Minute).GeocodeExact(context.Background(), "1"); !errors.Is(err, boom) {
		t.Fatalf("expected inner error, got %v", err)
	}
}
