package pg

import (
	"context"
	"errors"
	"testing"

	"channelhub/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

const dsn = "postgres://channelhub:secret@db:5432/channelhub?sslmode=disable"

func TestOpen_ParseError(t *testing.T) {
	_, err := Open(context.Background(), Config{URL: "://bad"}, nil, nil)
	require.Error(t, err)
}

func TestOpen_PoolErrorBubbles(t *testing.T) {
	testkit.Serial(t)
	boom := errors.New("dial refused")
	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) { return nil, boom })

	_, err := Open(context.Background(), Config{URL: dsn}, nil, nil)
	require.ErrorIs(t, err, boom)
}

func TestOpen_AppliesConfig(t *testing.T) {
	testkit.Serial(t)
	var seen *pgxpool.Config
	testkit.Swap(t, &newPool, func(_ context.Context, c *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = c
		return &pgxpool.Pool{}, nil
	})

	mutated := false
	p, err := Open(context.Background(), Config{URL: dsn, MaxConns: 7, SlowMs: 250, AppName: "channelhub-api"}, nil,
		func(*pgxpool.Config) { mutated = true })
	require.NoError(t, err)
	require.True(t, mutated)
	require.EqualValues(t, 7, seen.MaxConns)
	require.Equal(t, "channelhub-api", seen.ConnConfig.RuntimeParams["application_name"])
	require.Equal(t, 250, p.SlowMs)
}

func TestClose_NilSafe(t *testing.T) {
	var p *PG
	p.Close()
	(&PG{}).Close()
}
