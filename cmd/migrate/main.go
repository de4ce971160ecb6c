// Command migrate runs the embedded goose migrations.
//
//	migrate [-config config.yaml] up|down|status|redo|version
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bryanwahyu/blindspot-radar/internal/config"
	"github.com/bryanwahyu/blindspot-radar/internal/infra/db/migrations"
	mysqlp "github.com/bryanwahyu/blindspot-radar/internal/infra/db/mysql"
	"github.com/bryanwahyu/blindspot-radar/internal/infra/db/postgres"
)

func main() {
	path := flag.String("config", envOr("CONFIG_PATH", "config.yaml"), "config file")
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	if err := migrate(*path, command, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
}

func migrate(path, command string, args []string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var dsn string
	connect := postgres.Connect
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		dsn = cfg.PostgresDSN()
	case config.DriverMySQL:
		dsn = cfg.MySQLDSN()
		connect = mysqlp.Connect
	default:
		return fmt.Errorf("driver %q has no migrations", cfg.Database.Driver)
	}

	db, err := connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	var extra []string
	if len(args) > 1 {
		extra = args[1:]
	}
	return migrations.Run(ctx, db, cfg.Database.Driver, command, extra...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
