// Package repo provides postgres access for content distribution
package repo

import (
	"context"
	"strconv"
	"time"

	"channelhub/internal/modkit/repokit"
	"channelhub/internal/platform/store"
	"channelhub/internal/services/api/distribute/domain"
)

// Content is the slice of a content item distribution needs
type Content struct {
	ID         int64
	VideoID    string
	OwnerID    int64
	Status     string
	Visibility string
}

// Upsert is one distribution write
type Upsert struct {
	ContentID   int64
	ChannelSlug string
	Category    string
	PublishAt   time.Time
	ExpiresAt   *time.Time
	Priority    int
}

// Repo defines the repository contract for content distribution
type Repo interface {
	ContentByVideoID(ctx context.Context, videoID string) (Content, bool, error)
	ContentByID(ctx context.Context, id int64) (Content, bool, error)
	// ActiveBundle returns member channel slugs ordered by position
	// ok is false for unknown and inactive bundles
	ActiveBundle(ctx context.Context, slug string) (members []string, ok bool, err error)
	// Upsert inserts or refreshes one record, priority never decreases
	Upsert(ctx context.Context, u Upsert) error
	ListByContent(ctx context.Context, contentID int64) ([]domain.Record, error)
}

// ChannelLookup resolves a channel slug or legacy city name to the canonical slug
type ChannelLookup interface {
	ChannelSlug(ctx context.Context, key string) (slug string, ok bool, err error)
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

// LockTimeout bounds how long statements in the transaction wait on row locks
func LockTimeout(d time.Duration) repokit.BeginHook {
	ms := strconv.FormatInt(d.Milliseconds(), 10) + "ms"
	return func(ctx context.Context, q repokit.Queryer) error {
		_, err := q.Exec(ctx, `select set_config('lock_timeout', $1, true)`, ms)
		return err
	}
}

const selectContent = `
select id, coalesce(video_id, ''), owner_id, status, visibility
from content_items`

func scanContent(r store.Row) (Content, error) {
	var c Content
	err := r.Scan(&c.ID, &c.VideoID, &c.OwnerID, &c.Status, &c.Visibility)
	return c, err
}

func (r *queries) ContentByVideoID(ctx context.Context, videoID string) (Content, bool, error) {
	return store.Maybe(ctx, r.q, scanContent, selectContent+`
where video_id = $1`, videoID)
}

func (r *queries) ContentByID(ctx context.Context, id int64) (Content, bool, error) {
	return store.Maybe(ctx, r.q, scanContent, selectContent+`
where id = $1`, id)
}

func scanString(r store.Row) (string, error) {
	var s string
	err := r.Scan(&s)
	return s, err
}

func (r *queries) ActiveBundle(ctx context.Context, slug string) ([]string, bool, error) {
	active, ok, err := store.Maybe(ctx, r.q, func(row store.Row) (bool, error) {
		var b bool
		err := row.Scan(&b)
		return b, err
	}, `select active from channel_bundles where slug = $1`, slug)
	if err != nil || !ok || !active {
		return nil, false, err
	}
	members, err := store.Many(ctx, r.q, scanString, `
select channel_slug from channel_bundle_members
where bundle_slug = $1
order by position, channel_slug`, slug)
	if err != nil {
		return nil, false, err
	}
	return members, true, nil
}

func (r *queries) Upsert(ctx context.Context, u Upsert) error {
	_, err := r.q.Exec(ctx, `
insert into distributions (content_id, channel_slug, category, publish_at, expires_at, status, priority)
values ($1, $2, $3, $4, $5, 'active', $6)
on conflict (content_id, channel_slug, category) do update set
  publish_at = excluded.publish_at,
  expires_at = excluded.expires_at,
  status = 'active',
  priority = greatest(distributions.priority, excluded.priority),
  updated_at = now()`,
		u.ContentID, u.ChannelSlug, u.Category, u.PublishAt, u.ExpiresAt, u.Priority)
	return err
}

func scanRecord(r store.Row) (domain.Record, error) {
	var d domain.Record
	err := r.Scan(
		&d.ContentID,
		&d.ChannelSlug,
		&d.Category,
		&d.PublishAt,
		&d.ExpiresAt,
		&d.Status,
		&d.Priority,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

func (r *queries) ListByContent(ctx context.Context, contentID int64) ([]domain.Record, error) {
	return store.Many(ctx, r.q, scanRecord, `
select content_id, channel_slug, category, publish_at, expires_at, status, priority, created_at, updated_at
from distributions
where content_id = $1
order by category, priority desc, channel_slug`, contentID)
}
