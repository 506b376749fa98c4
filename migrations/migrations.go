// Package migrations embeds the SQL schema and applies it with goose
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/pressly/goose/v3"
)

// FS holds the postgres migrations
//
//go:embed *.sql
var FS embed.FS

// ClickHouseFS holds the clickhouse DDL, applied in file name order
//
//go:embed clickhouse/*.sql
var ClickHouseFS embed.FS

var gooseUpContext = goose.UpContext

// Setup points goose at the embedded postgres migrations
func Setup() error {
	goose.SetBaseFS(FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	return nil
}

// Up applies every pending postgres migration
func Up(ctx context.Context, db *sql.DB) error {
	if err := Setup(); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// ClickHouseDDL returns the clickhouse statements in apply order
func ClickHouseDDL() ([]string, error) {
	names, err := fs.Glob(ClickHouseFS, "clickhouse/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for _, n := range names {
		b, err := ClickHouseFS.ReadFile(n)
		if err != nil {
			return nil, err
		}
		if s := strings.TrimSpace(string(b)); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
