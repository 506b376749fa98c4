// Package service contains content search workflows
package service

import (
	"context"
	"time"

	"channelhub/internal/core/access"
	"channelhub/internal/core/query"
	"channelhub/internal/modkit/repokit"
	perr "channelhub/internal/platform/errors"
	"channelhub/internal/services/api/search/domain"
	"channelhub/internal/services/api/search/repo"
)

// page bounds
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Service defines the service contract for content search
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	obs    Observer
	now    func() time.Time
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

// New creates a new search service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opts ...Option) *Svc {
	if db == nil {
		panic("search.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("search.Service requires a non nil Repo binder")
	}
	s := &Svc{Repo: binder.Bind(db), binder: binder, db: db, obs: LogObserver{}, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Search runs q under the caller's visibility scope
//
// Purely numeric input walks query.NumericCascade and stops at the first
// strategy with any match. Everything else is parsed into an intent, and
// input with nothing to filter on lists the whole visible corpus.
func (s *Svc) Search(ctx context.Context, in domain.SearchInput, u access.ActingUser) (domain.SearchResult, error) {
	start := s.now()
	s.obs.Started(ctx, in.Q, u)

	f := repo.Filter{Scope: access.SearchScope(u), Limit: clampLimit(in.Limit), Offset: max(in.Offset, 0)}

	var (
		page repo.Page
		mode string
		err  error
	)
	if query.IsNumeric(in.Q) {
		mode, err = query.Cascade(ctx, in.Q, query.NumericCascade, func(ctx context.Context, e query.Expr) (bool, error) {
			f.Expr = e
			p, err := s.Repo.Find(ctx, f)
			if err != nil {
				return false, err
			}
			page = p
			return p.Total > 0, nil
		})
	} else {
		mode = domain.MatchAll
		if intent, ok := query.Parse(in.Q); ok {
			f.Expr, mode = intent.Expr(), string(intent.Mode)
		}
		page, err = s.Repo.Find(ctx, f)
	}
	if err != nil {
		s.obs.Failed(ctx, err)
		return domain.SearchResult{}, perr.FromPostgres(err, "search failed")
	}

	out := domain.SearchResult{
		Items:        make([]domain.Item, 0, len(page.Rows)),
		MatchMode:    mode,
		TotalMatched: page.Total,
		Limit:        f.Limit,
		Offset:       f.Offset,
	}
	for _, r := range page.Rows {
		out.Items = append(out.Items, toItem(r))
	}
	s.obs.Finished(ctx, mode, out.TotalMatched, s.now().Sub(start))
	return out, nil
}

func clampLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultLimit
	case n > MaxLimit:
		return MaxLimit
	default:
		return n
	}
}

func toItem(r repo.RowItem) domain.Item {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.Item{
		ID:          r.ID,
		VideoID:     r.VideoID,
		Link:        r.Link,
		Title:       r.Title,
		Description: r.Description,
		Tags:        tags,
		Status:      r.Status,
		Visibility:  r.Visibility,
		Owner: domain.Owner{
			ID:          r.OwnerID,
			UserNumber:  r.UserNumber,
			Email:       r.Email,
			FullName:    r.FullName,
			ProfileName: r.ProfileName,
			Handle:      r.Handle,
			Login:       r.Login,
			Location:    r.Location,
			Slug:        r.Slug,
			Phone:       r.Phone,
		},
	}
}
