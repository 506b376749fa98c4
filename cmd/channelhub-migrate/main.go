package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"channelhub/internal/platform/config"
	"channelhub/internal/platform/logger"
	"channelhub/internal/platform/store/ch"
	"channelhub/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: channelhub-migrate <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  up          Migrate postgres to the latest version")
	fmt.Fprintln(os.Stderr, "  up-one      Migrate postgres one version up")
	fmt.Fprintln(os.Stderr, "  down        Roll postgres back one version")
	fmt.Fprintln(os.Stderr, "  status      Show postgres migration status")
	fmt.Fprintln(os.Stderr, "  version     Show current postgres version")
	fmt.Fprintln(os.Stderr, "  clickhouse  Apply the clickhouse audit DDL")
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(1)
	}

	root := config.New()
	l := logger.Named("migrate")
	ctx := context.Background()

	cmd := flag.Arg(0)
	if cmd == "clickhouse" {
		if err := applyClickHouse(ctx, root.Prefix("CORE_CH_")); err != nil {
			l.Fatal().Err(err).Msg("clickhouse ddl failed")
		}
		l.Info().Msg("clickhouse ddl applied")
		return
	}

	db, err := sql.Open("pgx", root.Prefix("CORE_PG_").MustString("DBURL"))
	if err != nil {
		l.Fatal().Err(err).Msg("open database")
	}
	defer func() { _ = db.Close() }()

	if err := migrations.Setup(); err != nil {
		l.Fatal().Err(err).Msg("goose setup")
	}

	switch cmd {
	case "up":
		err = goose.UpContext(ctx, db, ".")
	case "up-one":
		err = goose.UpByOneContext(ctx, db, ".")
	case "down":
		err = goose.DownContext(ctx, db, ".")
	case "status":
		err = goose.StatusContext(ctx, db, ".")
	case "version":
		err = goose.VersionContext(ctx, db, ".")
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		l.Fatal().Err(err).Str("command", cmd).Msg("migration failed")
	}
	l.Info().Str("command", cmd).Msg("migration done")
}

func applyClickHouse(ctx context.Context, cfg config.Conf) error {
	stmts, err := migrations.ClickHouseDDL()
	if err != nil {
		return err
	}
	c, err := ch.Open(ctx, ch.Config{
		Addr:     cfg.MayString("ADDR", "127.0.0.1:9000"),
		Database: cfg.MayString("DATABASE", "channelhub"),
		User:     cfg.MayString("USER", "default"),
		Password: cfg.MayString("PASSWORD", ""),
		Role:     "migrate",
	})
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	for _, s := range stmts {
		if err := c.Exec(ctx, s); err != nil {
			return fmt.Errorf("exec %.40q: %w", s, err)
		}
	}
	return nil
}
