//go:build integration_pg
// +build integration_pg

package repo_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"channelhub/internal/core/access"
	"channelhub/internal/core/geo"
	"channelhub/internal/platform/store"
	chrepo "channelhub/internal/services/api/channels/repo"
	"channelhub/internal/services/api/distribute/domain"
	dmod "channelhub/internal/services/api/distribute/module"
	drepo "channelhub/internal/services/api/distribute/repo"
	dsvc "channelhub/internal/services/api/distribute/service"
	"channelhub/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "postgres",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, port.Port())
}

const seed = `
insert into profiles (id, email, full_name, handle) values
  (10, 'owner@acme.tv', 'Olive Owner', 'olive'),
  (11, 'other@acme.tv', 'Oscar Other', 'oscar');
insert into content_items (id, video_id, owner_id, title, status, visibility) values
  (1, 'vid-1', 10, 'Harbour lights', 'approved', 'public');
insert into channels (slug, name, city, population, latitude, longitude) values
  ('la', 'LA One', 'Los Angeles', 3800000, 34.0522, -118.2437),
  ('sf', 'Bay Channel', 'San Francisco', 800000, 37.7749, -122.4194),
  ('bh', 'Beverly Hills TV', 'Beverly Hills', 34000, 34.0901, -118.4065);
insert into channel_bundles (slug, name, active) values ('west', 'West coast', true), ('old', 'Retired', false);
insert into channel_bundle_members (bundle_slug, channel_slug, position) values
  ('west', 'sf', 1), ('west', 'la', 2), ('old', 'bh', 1);
insert into geocodes (postal_code, latitude, longitude) values ('90210', 34.0901, -118.4065);
`

func setup(t *testing.T) (*store.Store, *dsvc.Svc) {
	t.Helper()
	dsn := startPostgres(t)
	ctx := context.Background()

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, migrations.Up(ctx, db))
	_, err = db.ExecContext(ctx, seed)
	require.NoError(t, err)

	st, err := store.Open(ctx, store.Config{AppName: "channelhub-it", PG: store.PGConfig{Enabled: true, URL: dsn}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	svc := dsvc.New(st.PG, drepo.NewPG(), dmod.ChannelsFrom(chrepo.NewPG()))
	return st, svc
}

func TestDistribution_Integration(t *testing.T) {
	st, svc := setup(t)
	ctx := context.Background()
	owner := access.ActingUser{ID: 10, Role: access.RoleCreator}

	res, err := svc.Distribute(ctx, domain.DistributeInput{
		ContentID: "vid-1",
		Channels:  []string{"Beverly Hills", "atlantis"},
		Bundles:   []string{"west", "old"},
		Category:  "news",
		Priority:  5,
	}, owner)
	require.NoError(t, err)
	require.Equal(t, []string{"bh", "sf", "la"}, res.DistributedChannels)
	require.Equal(t, []string{"atlantis"}, res.SkippedChannels)

	// a lower priority never overwrites a higher one
	res, err = svc.Distribute(ctx, domain.DistributeInput{ContentID: "1", Channels: []string{"la"}, Category: "news", Priority: 3}, owner)
	require.NoError(t, err)

	list, err := svc.ListDistributions(ctx, "vid-1", owner)
	require.NoError(t, err)
	require.Len(t, list.Records, 3)
	for _, r := range list.Records {
		require.Equal(t, 5, r.Priority, r.ChannelSlug)
		require.Equal(t, domain.StatusActive, r.Status)
	}

	// the non owner is rejected without writes
	_, err = svc.Distribute(ctx, domain.DistributeInput{ContentID: "vid-1", Channels: []string{"la"}, Category: "promo"}, access.ActingUser{ID: 11, Role: access.RoleCreator})
	require.Error(t, err)
	n, err := store.Scalar[int64](ctx, st.PG, `select count(*) from distributions where category = 'promo'`)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestChannelsRepo_Integration(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()
	r := chrepo.NewPG().Bind(st.PG)

	res, err := geo.Resolve(ctx, r, "90299")
	require.NoError(t, err)
	require.True(t, res.Fallback)

	rows, err := r.ChannelsNear(ctx, res.Point, 30)
	require.NoError(t, err)
	ranked := geo.Rank(res.Point, 30, rows)
	require.Len(t, ranked, 2)
	require.Equal(t, "bh", ranked[0].Site.Slug)
	require.Equal(t, "la", ranked[1].Site.Slug)

	text, err := r.ChannelsMatching(ctx, "an", 50)
	require.NoError(t, err)
	require.Equal(t, "la", text[0].Slug, "ordered by population")
}
