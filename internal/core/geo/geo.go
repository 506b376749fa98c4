// Package geo parses postal code queries and ranks sites by great-circle distance
package geo

import (
	"context"
	"errors"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	// EarthRadiusMiles is the sphere radius used for every distance
	EarthRadiusMiles = 3959.0

	// DefaultRadius applies when the query carries no radius suffix
	DefaultRadius = 30
	// MaxRadius caps any requested radius
	MaxRadius = 100

	prefixLen = 3
)

// ErrNoCoordinates is returned when neither the exact code nor its prefix resolves
var ErrNoCoordinates = errors.New("geo: no coordinates for postal code")

var zipPattern = regexp.MustCompile(`^(\d{4,6})(?:[,.\-](\d+))?$`)

// ZipQuery is a parsed postal code search
type ZipQuery struct {
	Code   string `json:"code"`
	Radius int    `json:"radius"`
}

// ParseZip reports whether raw is a postal code query, "90210" or "90210,50"
func ParseZip(raw string) (ZipQuery, bool) {
	m := zipPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return ZipQuery{}, false
	}
	q := ZipQuery{Code: m[1], Radius: DefaultRadius}
	if m[2] != "" {
		r, err := strconv.Atoi(m[2])
		if err != nil || r > MaxRadius {
			// only overflow can fail here, digits are guaranteed by the pattern
			r = MaxRadius
		}
		q.Radius = r
	}
	return q, true
}

// Point is a latitude/longitude pair in degrees
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func rad(d float64) float64 { return d * math.Pi / 180 }

// Distance returns the spherical law of cosines distance in miles
func Distance(a, b Point) float64 {
	if a == b {
		return 0
	}
	la1, la2 := rad(a.Lat), rad(b.Lat)
	c := math.Cos(la1)*math.Cos(la2)*math.Cos(rad(b.Lng)-rad(a.Lng)) + math.Sin(la1)*math.Sin(la2)
	// rounding can push c just outside [-1, 1] for near points
	c = math.Max(-1, math.Min(1, c))
	return EarthRadiusMiles * math.Acos(c)
}

// LatitudeWindow returns a latitude band that contains every point within radius of origin
func LatitudeWindow(origin Point, radius float64) (lo, hi float64) {
	d := radius / EarthRadiusMiles * 180 / math.Pi
	return origin.Lat - d, origin.Lat + d
}

// Site is anything with optional coordinates and a population used for ties
type Site interface {
	Location() (Point, bool)
	Population() int64
	Key() string
}

// Ranked pairs a site with its distance from the origin
type Ranked[S Site] struct {
	Site     S
	Distance float64
}

// Rank keeps sites within radius (inclusive) ordered by distance,
// then population descending, then key
func Rank[S Site](origin Point, radius float64, sites []S) []Ranked[S] {
	out := make([]Ranked[S], 0, len(sites))
	for _, s := range sites {
		p, ok := s.Location()
		if !ok {
			continue
		}
		if d := Distance(origin, p); d <= radius {
			out = append(out, Ranked[S]{Site: s, Distance: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if pa, pb := a.Site.Population(), b.Site.Population(); pa != pb {
			return pa > pb
		}
		return a.Site.Key() < b.Site.Key()
	})
	return out
}

// Lookup is the geocode repository contract
// GeocodeByPrefix returns at most one candidate whose code starts with prefix
type Lookup interface {
	GeocodeExact(ctx context.Context, code string) (Point, bool, error)
	GeocodeByPrefix(ctx context.Context, prefix string) (Point, bool, error)
}

// Resolution is the outcome of Resolve
type Resolution struct {
	Point    Point
	Fallback bool
}

// Resolve maps code to coordinates, falling back to the first code sharing its prefix
func Resolve(ctx context.Context, l Lookup, code string) (Resolution, error) {
	p, ok, err := l.GeocodeExact(ctx, code)
	if err != nil {
		return Resolution{}, err
	}
	if ok {
		return Resolution{Point: p}, nil
	}
	if len(code) < prefixLen {
		return Resolution{}, ErrNoCoordinates
	}
	p, ok, err = l.GeocodeByPrefix(ctx, code[:prefixLen])
	if err != nil {
		return Resolution{}, err
	}
	if !ok {
		return Resolution{}, ErrNoCoordinates
	}
	return Resolution{Point: p, Fallback: true}, nil
}
