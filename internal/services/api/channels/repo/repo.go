// Package repo provides postgres access for channels and geocodes
package repo

import (
	"context"
	"strings"

	"channelhub/internal/core/geo"
	"channelhub/internal/core/query"
	"channelhub/internal/modkit/repokit"
	"channelhub/internal/platform/store"
)

// Row is one channels table row
type Row struct {
	Slug         string
	Name         string
	City         string
	Region       string
	Country      string
	Residents    int64
	Latitude     *float64
	Longitude    *float64
	CustomDomain string
}

// Location implements geo.Site
func (r Row) Location() (geo.Point, bool) {
	if r.Latitude == nil || r.Longitude == nil {
		return geo.Point{}, false
	}
	return geo.Point{Lat: *r.Latitude, Lng: *r.Longitude}, true
}

// Population implements geo.Site
func (r Row) Population() int64 { return r.Residents }

// Key implements geo.Site
func (r Row) Key() string { return r.Slug }

// Repo defines the repository contract for channels and geocodes
type Repo interface {
	geo.Lookup

	// ChannelsNear lists channels with coordinates inside a latitude band
	// wide enough to hold every channel within radius miles of origin
	ChannelsNear(ctx context.Context, origin geo.Point, radius float64) ([]Row, error)
	// ChannelsMatching lists channels whose slug, name, city, region or country contain term
	ChannelsMatching(ctx context.Context, term string, limit int) ([]Row, error)
	// ChannelBySlugOrCity resolves a slug, or a legacy city name compared case-insensitively
	ChannelBySlugOrCity(ctx context.Context, key string) (Row, bool, error)
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const selectChannels = `
select slug, name, city, region, country, population, latitude, longitude, custom_domain
from channels`

func scanRow(r store.Row) (Row, error) {
	var c Row
	err := r.Scan(
		&c.Slug,
		&c.Name,
		&c.City,
		&c.Region,
		&c.Country,
		&c.Residents,
		&c.Latitude,
		&c.Longitude,
		&c.CustomDomain,
	)
	return c, err
}

func (r *queries) ChannelsNear(ctx context.Context, origin geo.Point, radius float64) ([]Row, error) {
	lo, hi := geo.LatitudeWindow(origin, radius)
	return store.Many(ctx, r.q, scanRow, selectChannels+`
where latitude is not null and longitude is not null
  and latitude between $1 and $2`, lo, hi)
}

func (r *queries) ChannelsMatching(ctx context.Context, term string, limit int) ([]Row, error) {
	pat := "%" + query.EscapeLike(strings.ToLower(strings.TrimSpace(term))) + "%"
	return store.Many(ctx, r.q, scanRow, selectChannels+`
where lower(slug) like $1
   or lower(name) like $1
   or lower(city) like $1
   or lower(region) like $1
   or lower(country) like $1
order by population desc, slug
limit $2`, pat, limit)
}

func (r *queries) ChannelBySlugOrCity(ctx context.Context, key string) (Row, bool, error) {
	// an exact slug beats any city name match
	return store.Maybe(ctx, r.q, scanRow, selectChannels+`
where slug = $1 or lower(city) = lower($1)
order by (slug = $1) desc, population desc, slug
limit 1`, strings.TrimSpace(key))
}

func scanPoint(r store.Row) (geo.Point, error) {
	var p geo.Point
	err := r.Scan(&p.Lat, &p.Lng)
	return p, err
}

func (r *queries) GeocodeExact(ctx context.Context, code string) (geo.Point, bool, error) {
	return store.Maybe(ctx, r.q, scanPoint, `
select latitude, longitude from geocodes where postal_code = $1`, code)
}

func (r *queries) GeocodeByPrefix(ctx context.Context, prefix string) (geo.Point, bool, error) {
	return store.Maybe(ctx, r.q, scanPoint, `
select latitude, longitude from geocodes
where postal_code like $1
order by postal_code
limit 1`, query.EscapeLike(prefix)+"%")
}
