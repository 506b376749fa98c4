package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"channelhub/internal/core/geo"
	"channelhub/internal/modkit/repokit"
	perr "channelhub/internal/platform/errors"
	"channelhub/internal/platform/testkit/sqlfake"
	"channelhub/internal/services/api/channels/domain"
	"channelhub/internal/services/api/channels/repo"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	rows     []repo.Row
	geocodes map[string]geo.Point
	err      error
	limits   []int
}

func (m *memRepo) ChannelsNear(_ context.Context, origin geo.Point, radius float64) ([]repo.Row, error) {
	if m.err != nil {
		return nil, m.err
	}
	lo, hi := geo.LatitudeWindow(origin, radius)
	var out []repo.Row
	for _, r := range m.rows {
		if r.Latitude != nil && *r.Latitude >= lo && *r.Latitude <= hi {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) ChannelsMatching(_ context.Context, term string, limit int) ([]repo.Row, error) {
	m.limits = append(m.limits, limit)
	if m.err != nil {
		return nil, m.err
	}
	term = strings.ToLower(term)
	var out []repo.Row
	for _, r := range m.rows {
		hay := strings.ToLower(strings.Join([]string{r.Slug, r.Name, r.City, r.Region, r.Country}, " "))
		if strings.Contains(hay, term) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) ChannelBySlugOrCity(context.Context, string) (repo.Row, bool, error) {
	return repo.Row{}, false, nil
}

func (m *memRepo) GeocodeExact(_ context.Context, code string) (geo.Point, bool, error) {
	p, ok := m.geocodes[code]
	return p, ok, m.err
}

func (m *memRepo) GeocodeByPrefix(_ context.Context, prefix string) (geo.Point, bool, error) {
	best := ""
	for code := range m.geocodes {
		if strings.HasPrefix(code, prefix) && (best == "" || code < best) {
			best = code
		}
	}
	if best == "" {
		return geo.Point{}, false, m.err
	}
	return m.geocodes[best], true, m.err
}

type recObserver struct {
	failed []string
	last   domain.ChannelSearchResult
}

func (o *recObserver) Started(context.Context, string) {}
func (o *recObserver) Failed(_ context.Context, typ string, _ error) {
	o.failed = append(o.failed, typ)
}
func (o *recObserver) Finished(_ context.Context, res domain.ChannelSearchResult, _ time.Duration) {
	o.last = res
}

func f(v float64) *float64 { return &v }

func fixture() *memRepo {
	return &memRepo{
		geocodes: map[string]geo.Point{
			"90210": {Lat: 34.0901, Lng: -118.4065},
			"10001": {Lat: 40.7506, Lng: -73.9972},
			"10002": {Lat: 40.7157, Lng: -73.9863},
		},
		rows: []repo.Row{
			{Slug: "bh", Name: "Beverly Hills TV", City: "Beverly Hills", Region: "CA", Country: "US", Residents: 34000, Latitude: f(34.0901), Longitude: f(-118.4065)},
			{Slug: "la", Name: "LA One", City: "Los Angeles", Region: "CA", Country: "US", Residents: 3800000, Latitude: f(34.0522), Longitude: f(-118.2437)},
			{Slug: "sm", Name: "Santa Monica", City: "Santa Monica", Region: "CA", Country: "US", Residents: 90000, Latitude: f(34.0195), Longitude: f(-118.4912)},
			{Slug: "sd", Name: "San Diego", City: "San Diego", Region: "CA", Country: "US", Residents: 1400000, Latitude: f(32.7157), Longitude: f(-117.1611)},
			{Slug: "nocoords", Name: "Somewhere CA", City: "Unknown", Region: "CA", Country: "US", Residents: 10},
			{Slug: "nyc", Name: "Gotham", City: "New York", Region: "NY", Country: "US", Residents: 8000000, Latitude: f(40.7128), Longitude: f(-74.0060)},
		},
	}
}

func newSvc(t *testing.T, m *memRepo, opts ...Option) (*Svc, *recObserver) {
	t.Helper()
	obs := &recObserver{}
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return m })
	return New(sqlfake.New(), binder, append([]Option{WithObserver(obs)}, opts...)...), obs
}

func slugs(cs []domain.Channel) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Slug)
	}
	return out
}

func TestSearchChannels_ZipWithRadius(t *testing.T) {
	s, obs := newSvc(t, fixture())
	res, err := s.SearchChannels(context.Background(), " 90210,50 ")
	require.NoError(t, err)

	require.Equal(t, domain.SearchTypeZip, res.SearchType)
	require.Equal(t, "90210", res.Zip)
	require.Equal(t, 50, res.Radius)
	require.False(t, res.Fallback)
	// nearest first, san diego is beyond 50 miles, nocoords has no location
	require.Equal(t, []string{"bh", "sm", "la"}, slugs(res.Channels))
	require.NotNil(t, res.Channels[0].Distance)
	require.Zero(t, *res.Channels[0].Distance)
	for i := 1; i < len(res.Channels); i++ {
		require.LessOrEqual(t, *res.Channels[i-1].Distance, *res.Channels[i].Distance)
		require.LessOrEqual(t, *res.Channels[i].Distance, 50.0)
	}
	require.Equal(t, res, obs.last)
}

func TestSearchChannels_DefaultAndCappedRadius(t *testing.T) {
	s, _ := newSvc(t, fixture())
	res, err := s.SearchChannels(context.Background(), "90210")
	require.NoError(t, err)
	require.Equal(t, geo.DefaultRadius, res.Radius)

	res, err = s.SearchChannels(context.Background(), "90210-500")
	require.NoError(t, err)
	require.Equal(t, geo.MaxRadius, res.Radius)
	require.NotContains(t, slugs(res.Channels), "sd", "san diego sits past 100 miles")
}

func TestSearchChannels_PrefixFallback(t *testing.T) {
	s, _ := newSvc(t, fixture())
	res, err := s.SearchChannels(context.Background(), "10099")
	require.NoError(t, err)
	require.True(t, res.Fallback)
	require.Equal(t, &geo.Point{Lat: 40.7506, Lng: -73.9972}, res.Origin, "lowest code sharing the prefix wins")
	require.Equal(t, []string{"nyc"}, slugs(res.Channels))
}

func TestSearchChannels_UnknownZip(t *testing.T) {
	s, obs := newSvc(t, fixture())
	_, err := s.SearchChannels(context.Background(), "55555")
	require.Error(t, err)
	require.Equal(t, perr.ErrorCodeGeoResolution, perr.CodeOf(err))
	require.Contains(t, err.Error(), "no coordinates for postal code 55555")
	require.Equal(t, []string{domain.SearchTypeZip}, obs.failed)
}

func TestSearchChannels_TextMode(t *testing.T) {
	m := fixture()
	s, _ := newSvc(t, m, WithTextLimit(5))
	res, err := s.SearchChannels(context.Background(), "santa")
	require.NoError(t, err)
	require.Equal(t, domain.SearchTypeText, res.SearchType)
	require.Equal(t, []string{"sm"}, slugs(res.Channels))
	require.Nil(t, res.Channels[0].Distance)
	require.Empty(t, res.Zip)
	require.Equal(t, []int{5}, m.limits)

	// too few digits for a postal code
	res, err = s.SearchChannels(context.Background(), "902")
	require.NoError(t, err)
	require.Equal(t, domain.SearchTypeText, res.SearchType)
}

func TestSearchChannels_StorageError(t *testing.T) {
	m := fixture()
	m.err = errors.New("conn refused")
	s, obs := newSvc(t, m)

	_, err := s.SearchChannels(context.Background(), "la")
	require.Error(t, err)
	require.Equal(t, perr.ErrorCodeDB, perr.CodeOf(err))

	_, err = s.SearchChannels(context.Background(), "90210")
	require.Error(t, err)
	require.Equal(t, []string{domain.SearchTypeText, domain.SearchTypeZip}, obs.failed)
}

type nilKV struct{ gets int }

func (k *nilKV) Get(context.Context, string) *redis.StringCmd {
	k.gets++
	return redis.NewStringResult("", redis.Nil)
}

func (k *nilKV) Set(context.Context, string, any, time.Duration) *redis.StatusCmd {
	return redis.NewStatusResult("OK", nil)
}

func TestSearchChannels_UsesGeocodeCache(t *testing.T) {
	kv := &nilKV{}
	s, _ := newSvc(t, fixture(), WithGeocodeCache(kv, time.Minute))
	_, err := s.SearchChannels(context.Background(), "10099")
	require.NoError(t, err)
	require.Equal(t, 2, kv.gets, "exact and prefix lookups both consult the cache")
}

func TestNew_PanicsOnNilDeps(t *testing.T) {
	require.Panics(t, func() { New(nil, repo.NewPG()) })
	require.Panics(t, func() { New(sqlfake.New(), nil) })
}
