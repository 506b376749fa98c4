// Package service contains channel search workflows
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"channelhub/internal/core/geo"
	"channelhub/internal/modkit/repokit"
	perr "channelhub/internal/platform/errors"
	"channelhub/internal/services/api/channels/domain"
	"channelhub/internal/services/api/channels/repo"
)

// DefaultTextLimit caps text mode results
const DefaultTextLimit = 50

// Service defines the service contract for channel search
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo      repo.Repo
	binder    repokit.Binder[repo.Repo]
	db        repokit.TxRunner
	lookup    geo.Lookup
	textLimit int
	obs       Observer
	now       func() time.Time
}

// Option customizes Svc
type Option func(*Svc)

// WithObserver replaces the default LogObserver
func WithObserver(o Observer) Option {
	return func(s *Svc) {
		if o != nil {
			s.obs = o
		}
	}
}

// WithGeocodeCache puts a redis read-through cache in front of geocode lookups
func WithGeocodeCache(kv repo.KV, ttl time.Duration) Option {
	return func(s *Svc) {
		if kv != nil {
			s.lookup = repo.NewCachedLookup(s.lookup, kv, ttl)
		}
	}
}

// WithTextLimit overrides DefaultTextLimit
func WithTextLimit(n int) Option {
	return func(s *Svc) {
		if n > 0 {
			s.textLimit = n
		}
	}
}

// New creates a new channel search service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opts ...Option) *Svc {
	if db == nil {
		panic("channels.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("channels.Service requires a non nil Repo binder")
	}
	r := binder.Bind(db)
	s := &Svc{Repo: r, binder: binder, db: db, lookup: r, textLimit: DefaultTextLimit, obs: LogObserver{}, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SearchChannels runs a zip search when q looks like a postal code ("90210" or "90210,50"),
// otherwise a case-insensitive text search ordered by population
func (s *Svc) SearchChannels(ctx context.Context, q string) (domain.ChannelSearchResult, error) {
	start := s.now()
	q = strings.TrimSpace(q)
	s.obs.Started(ctx, q)

	var (
		res domain.ChannelSearchResult
		err error
	)
	if zq, ok := geo.ParseZip(q); ok {
		res, err = s.byZip(ctx, zq)
		if err != nil {
			s.obs.Failed(ctx, domain.SearchTypeZip, err)
			return domain.ChannelSearchResult{}, err
		}
	} else {
		res, err = s.byText(ctx, q)
		if err != nil {
			s.obs.Failed(ctx, domain.SearchTypeText, err)
			return domain.ChannelSearchResult{}, err
		}
	}
	s.obs.Finished(ctx, res, s.now().Sub(start))
	return res, nil
}

func (s *Svc) byZip(ctx context.Context, zq geo.ZipQuery) (domain.ChannelSearchResult, error) {
	at, err := geo.Resolve(ctx, s.lookup, zq.Code)
	if errors.Is(err, geo.ErrNoCoordinates) {
		return domain.ChannelSearchResult{}, perr.GeoResolutionf("no coordinates for postal code %s", zq.Code)
	}
	if err != nil {
		return domain.ChannelSearchResult{}, perr.FromPostgres(err, "channel search failed")
	}

	radius := float64(zq.Radius)
	rows, err := s.Repo.ChannelsNear(ctx, at.Point, radius)
	if err != nil {
		return domain.ChannelSearchResult{}, perr.FromPostgres(err, "channel search failed")
	}

	ranked := geo.Rank(at.Point, radius, rows)
	origin := at.Point
	res := domain.ChannelSearchResult{
		Channels:   make([]domain.Channel, 0, len(ranked)),
		SearchType: domain.SearchTypeZip,
		Zip:        zq.Code,
		Radius:     zq.Radius,
		Origin:     &origin,
		Fallback:   at.Fallback,
	}
	for _, rk := range ranked {
		c := toChannel(rk.Site)
		d := rk.Distance
		c.Distance = &d
		res.Channels = append(res.Channels, c)
	}
	return res, nil
}

func (s *Svc) byText(ctx context.Context, term string) (domain.ChannelSearchResult, error) {
	rows, err := s.Repo.ChannelsMatching(ctx, term, s.textLimit)
	if err != nil {
		return domain.ChannelSearchResult{}, perr.FromPostgres(err, "channel search failed")
	}
	res := domain.ChannelSearchResult{Channels: make([]domain.Channel, 0, len(rows)), SearchType: domain.SearchTypeText}
	for _, r := range rows {
		res.Channels = append(res.Channels, toChannel(r))
	}
	return res, nil
}

func toChannel(r repo.Row) domain.Channel {
	return domain.Channel{
		Slug:         r.Slug,
		Name:         r.Name,
		City:         r.City,
		Region:       r.Region,
		Country:      r.Country,
		Population:   r.Residents,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		CustomDomain: r.CustomDomain,
	}
}
