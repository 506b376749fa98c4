package repo

import (
	"context"
	"strings"
	"testing"
	"time"

	"channelhub/internal/modkit/repokit"
	"channelhub/internal/platform/testkit/sqlfake"

	"github.com/google/go-cmp/cmp"
)

func TestActiveBundle(t *testing.T) {
	ctx := context.Background()

	db := sqlfake.New().
		Stub("from channel_bundles", []any{true}).
		Stub("from channel_bundle_members", []any{"sf"}, []any{"la"})
	members, ok, err := PG{}.Bind(db).ActiveBundle(ctx, "west")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if diff := cmp.Diff([]string{"sf", "la"}, members); diff != "" {
		t.Fatalf("members (-want +got):\n%s", diff)
	}

	inactive := sqlfake.New().Stub("from channel_bundles", []any{false})
	if _, ok, err := (PG{}).Bind(inactive).ActiveBundle(ctx, "old"); ok || err != nil {
		t.Fatalf("inactive bundle: ok=%v err=%v", ok, err)
	}
	if n := len(inactive.Calls()); n != 1 {
		t.Fatalf("members must not be read for an inactive bundle, saw %d statements", n)
	}

	unknown := sqlfake.New()
	if _, ok, err := (PG{}).Bind(unknown).ActiveBundle(ctx, "ghost"); ok || err != nil {
		t.Fatalf("unknown bundle: ok=%v err=%v", ok, err)
	}
}

func TestUpsert_MergesPriority(t *testing.T) {
	db := sqlfake.New()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	err := PG{}.Bind(db).Upsert(context.Background(), Upsert{ContentID: 1, ChannelSlug: "la", Category: "news", PublishAt: at, Priority: 5})
	if err != nil {
		t.Fatal(err)
	}
	w := db.Writes()
	if len(w) != 1 {
		t.Fatalf("writes = %d", len(w))
	}
	for _, frag := range []string{
		"on conflict (content_id, channel_slug, category) do update",
		"priority = greatest(distributions.priority, excluded.priority)",
		"status = 'active'",
	} {
		if !strings.Contains(w[0].SQL, frag) {
			t.Fatalf("upsert missing %q:\n%s", frag, w[0].SQL)
		}
	}
	var nilTime *time.Time
	if diff := cmp.Diff([]any{int64(1), "la", "news", at, nilTime, 5}, w[0].Args); diff != "" {
		t.Fatalf("args (-want +got):\n%s", diff)
	}
}

func TestContentLookups(t *testing.T) {
	db := sqlfake.New().
		Stub("where video_id = $1", []any{int64(4), "vid-4", int64(10), "approved", "public"}).
		Stub("where id = $1")
	q := PG{}.Bind(db)

	c, ok, err := q.ContentByVideoID(context.Background(), "vid-4")
	if err != nil || !ok || c != (Content{ID: 4, VideoID: "vid-4", OwnerID: 10, Status: "approved", Visibility: "public"}) {
		t.Fatalf("c=%+v ok=%v err=%v", c, ok, err)
	}
	if _, ok, err := q.ContentByID(context.Background(), 4); ok || err != nil {
		t.Fatalf("by id: ok=%v err=%v", ok, err)
	}
}

func TestLockTimeoutHook(t *testing.T) {
	db := sqlfake.New()
	tx := repokit.WithBeginHooks(db, LockTimeout(1500*time.Millisecond))
	if err := tx.Tx(context.Background(), func(repokit.Queryer) error { return nil }); err != nil {
		t.Fatal(err)
	}
	calls := db.Calls()
	if len(calls) != 1 || !strings.Contains(calls[0].SQL, "lock_timeout") || calls[0].Args[0] != "1500ms" {
		t.Fatalf("unexpected hook statements %+v", calls)
	}
}
