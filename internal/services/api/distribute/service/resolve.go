package service

import (
	"context"
	"strings"

	"channelhub/internal/services/api/distribute/repo"
)

// targets is the deduplicated selection of one request
type targets struct {
	channels []string
	ott      []string
	// picked counts the non blank channel and bundle names the caller sent
	picked int
}

func (t targets) empty() bool { return len(t.channels) == 0 && len(t.ott) == 0 }

// ottOnly reports a request that named OTT ids and nothing else
func (t targets) ottOnly() bool { return t.picked == 0 && len(t.ott) > 0 }

// resolveTargets expands active bundles into their members and unions them with
// the individually selected channels, first seen order wins
// unknown and inactive bundles are reported through skip and otherwise ignored
func resolveTargets(ctx context.Context, r repo.Repo, channels, bundles, ott []string, skip func(kind, key string)) (targets, error) {
	set := newOrderedSet()
	set.add(channels...)
	picked := len(set.items)

	seen := newOrderedSet()
	for _, b := range bundles {
		b = strings.TrimSpace(b)
		if b == "" || !seen.add(b) {
			continue
		}
		members, ok, err := r.ActiveBundle(ctx, b)
		if err != nil {
			return targets{}, err
		}
		if !ok {
			skip(skipBundle, b)
			continue
		}
		set.add(members...)
	}

	ids := newOrderedSet()
	ids.add(ott...)
	return targets{channels: set.items, ott: ids.items, picked: picked + len(seen.items)}, nil
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet { return &orderedSet{seen: map[string]struct{}{}, items: []string{}} }

// add trims each value and keeps the new non empty ones
// it reports whether the last value was new
func (s *orderedSet) add(vals ...string) bool {
	added := false
	for _, v := range vals {
		v = strings.TrimSpace(v)
		added = false
		if v == "" {
			continue
		}
		if _, dup := s.seen[v]; dup {
			continue
		}
		s.seen[v] = struct{}{}
		s.items = append(s.items, v)
		added = true
	}
	return added
}
