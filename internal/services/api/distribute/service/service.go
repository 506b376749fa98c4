// Package service contains content distribution workflows
package service

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"channelhub/internal/core/access"
	"channelhub/internal/core/query"
	"channelhub/internal/modkit/repokit"
	perr "channelhub/internal/platform/errors"
	"channelhub/internal/services/api/distribute/audit"
	"channelhub/internal/services/api/distribute/domain"
	"channelhub/internal/services/api/distribute/repo"

	"github.com/google/uuid"
)

// Service defines the service contract for content distribution
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo     repo.Repo
	binder   repokit.Binder[repo.Repo]
	channels repokit.Binder[repo.ChannelLookup]
	db       repokit.TxRunner
	audit    audit.Sink
	obs      Observer
	now      func() time.Time
	newID    func() string
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

// WithAudit sends committed batches to sink
func WithAudit(sink audit.Sink) Option {
	return func(s *Svc) {
		if sink != nil {
			s.audit = sink
		}
	}
}

// WithClock overrides time.Now, publish times default to it
func WithClock(now func() time.Time) Option {
	return func(s *Svc) {
		if now != nil {
			s.now = now
		}
	}
}

// WithBatchIDs overrides the uuid batch id generator
func WithBatchIDs(gen func() string) Option {
	return func(s *Svc) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// New creates a new distribution service
// channels binds the channel lookup into the distribution transaction
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], channels repokit.Binder[repo.ChannelLookup], opts ...Option) *Svc {
	if db == nil {
		panic("distribute.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("distribute.Service requires a non nil Repo binder")
	}
	if channels == nil {
		panic("distribute.Service requires a non nil channel lookup binder")
	}
	s := &Svc{
		Repo:     binder.Bind(db),
		binder:   binder,
		channels: channels,
		db:       db,
		audit:    audit.Nop{},
		obs:      LogObserver{},
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// errNoChannels is built per call, callers may decorate the error they get
func errNoChannels() error {
	return perr.WithField(perr.Validationf("no valid channels found"), "channels")
}

// Distribute places one content item on every resolvable channel in a single transaction
//
// Channels that resolve neither by slug nor by city name are skipped and reported.
// Re-running a batch refreshes the publish window and never lowers priority.
// OTT ids are echoed back but not stored.
func (s *Svc) Distribute(ctx context.Context, in domain.DistributeInput, u access.ActingUser) (domain.DistributeResult, error) {
	start := s.now()
	s.obs.Started(ctx, in, u)

	res, err := s.distribute(ctx, in, u)
	if err != nil {
		s.obs.Failed(ctx, err)
		return domain.DistributeResult{}, err
	}
	s.obs.Finished(ctx, res, s.now().Sub(start))
	return res, nil
}

func (s *Svc) distribute(ctx context.Context, in domain.DistributeInput, u access.ActingUser) (domain.DistributeResult, error) {
	category := strings.TrimSpace(in.Category)
	publishAt, err := s.validate(category, in)
	if err != nil {
		return domain.DistributeResult{}, err
	}

	c, err := s.gate(ctx, in.ContentID, u)
	if err != nil {
		return domain.DistributeResult{}, err
	}

	res := domain.DistributeResult{
		BatchID:             s.newID(),
		DistributedChannels: []string{},
		SkippedChannels:     []string{},
		Category:            category,
	}

	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		r, lk := s.binder.Bind(q), s.channels.Bind(q)

		t, err := resolveTargets(ctx, r, in.Channels, in.Bundles, in.OTTIDs, func(kind, key string) {
			s.obs.Skipped(ctx, kind, key)
		})
		if err != nil {
			return err
		}
		if t.empty() {
			return errNoChannels()
		}
		res.OTTEchoed = t.ott

		written := map[string]struct{}{}
		for _, key := range t.channels {
			slug, ok, err := lk.ChannelSlug(ctx, key)
			if err != nil {
				return err
			}
			if !ok {
				res.SkippedChannels = append(res.SkippedChannels, key)
				s.obs.Skipped(ctx, skipChannel, key)
				continue
			}
			// a slug and its legacy city name can both land on one channel
			if _, dup := written[slug]; dup {
				continue
			}
			if err := r.Upsert(ctx, repo.Upsert{
				ContentID:   c.ID,
				ChannelSlug: slug,
				Category:    category,
				PublishAt:   publishAt,
				ExpiresAt:   utcPtr(in.ExpiresAt),
				Priority:    in.Priority,
			}); err != nil {
				return err
			}
			written[slug] = struct{}{}
			res.DistributedChannels = append(res.DistributedChannels, slug)
		}

		// OTT ids only excuse an empty batch when no channel or bundle was named
		if len(res.DistributedChannels) == 0 && !t.ottOnly() {
			return errNoChannels()
		}
		return nil
	})
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeValidation) {
			return domain.DistributeResult{}, err
		}
		return domain.DistributeResult{}, perr.Wrap(err, perr.ErrorCodeUnknown, "distribution failed")
	}
	res.Success = true

	if aerr := s.audit.Record(ctx, audit.Event{
		At:        s.now(),
		BatchID:   res.BatchID,
		ContentID: c.ID,
		ActorID:   u.ID,
		ActorRole: string(u.Role),
		Category:  category,
		Channels:  res.DistributedChannels,
		Skipped:   res.SkippedChannels,
		OTTIDs:    res.OTTEchoed,
		Priority:  in.Priority,
	}); aerr != nil {
		s.obs.AuditFailed(ctx, res.BatchID, aerr)
	}
	return res, nil
}

// ListDistributions returns every record of a content item the caller may distribute
func (s *Svc) ListDistributions(ctx context.Context, contentID string, u access.ActingUser) (domain.ListResult, error) {
	c, err := s.gate(ctx, contentID, u)
	if err != nil {
		return domain.ListResult{}, err
	}
	recs, err := s.Repo.ListByContent(ctx, c.ID)
	if err != nil {
		return domain.ListResult{}, perr.FromPostgres(err, "list distributions failed")
	}
	if recs == nil {
		recs = []domain.Record{}
	}
	return domain.ListResult{ContentID: c.ID, Records: recs}, nil
}

// validate checks the request and returns the effective publish time
func (s *Svc) validate(category string, in domain.DistributeInput) (time.Time, error) {
	if category == "" {
		return time.Time{}, perr.WithField(perr.Validationf("category is required"), "category")
	}
	if utf8.RuneCountInString(category) > domain.MaxCategoryLen {
		return time.Time{}, perr.WithField(perr.Validationf("category must be at most %d characters", domain.MaxCategoryLen), "category")
	}
	if in.Priority < domain.MinPriority || in.Priority > domain.MaxPriority {
		return time.Time{}, perr.WithField(perr.Validationf("priority must be between %d and %d", domain.MinPriority, domain.MaxPriority), "priority")
	}
	publishAt := s.now().UTC()
	if in.PublishAt != nil {
		publishAt = in.PublishAt.UTC()
	}
	if in.ExpiresAt != nil && !in.ExpiresAt.After(publishAt) {
		return time.Time{}, perr.WithField(perr.Validationf("expiresAt must be after publishAt"), "expiresAt")
	}
	return publishAt, nil
}

// gate resolves the content item and checks the caller may distribute it
func (s *Svc) gate(ctx context.Context, id string, u access.ActingUser) (repo.Content, error) {
	c, err := s.content(ctx, id)
	if err != nil {
		return repo.Content{}, err
	}
	if !u.CanDistribute(c.OwnerID) {
		return repo.Content{}, perr.Forbiddenf("not allowed to distribute content %s", strings.TrimSpace(id))
	}
	return c, nil
}

// content looks id up as a video id first, then as a numeric internal id
func (s *Svc) content(ctx context.Context, id string) (repo.Content, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return repo.Content{}, perr.WithField(perr.Validationf("contentId is required"), "contentId")
	}
	c, ok, err := s.Repo.ContentByVideoID(ctx, id)
	if err != nil {
		return repo.Content{}, perr.Wrap(err, perr.ErrorCodeUnknown, "distribution failed")
	}
	if ok {
		return c, nil
	}
	if query.IsNumeric(id) {
		if n, convErr := strconv.ParseInt(id, 10, 64); convErr == nil {
			c, ok, err = s.Repo.ContentByID(ctx, n)
			if err != nil {
				return repo.Content{}, perr.Wrap(err, perr.ErrorCodeUnknown, "distribution failed")
			}
			if ok {
				return c, nil
			}
		}
	}
	return repo.Content{}, perr.NotFoundf("content %s not found", id)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
