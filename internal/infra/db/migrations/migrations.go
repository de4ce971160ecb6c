// Package migrations embeds the goose SQL migrations for each dialect.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql mysql/*.sql
var FS embed.FS

// Run executes a goose command ("up", "down", "status", ...) against db using
// the migrations of dialect ("postgres" or "mysql").
func Run(ctx context.Context, db *sql.DB, dialect, command string, args ...string) error {
	if dialect != "postgres" && dialect != "mysql" {
		return fmt.Errorf("unsupported migration dialect %q", dialect)
	}
	goose.SetBaseFS(FS)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	if err := goose.RunContext(ctx, command, db, dialect, args...); err != nil {
		return fmt.Errorf("migration %s: %w", command, err)
	}
	return nil
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, dialect string) error {
	return Run(ctx, db, dialect, "up")
}
