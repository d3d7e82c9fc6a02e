package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/extra/bundebug"
	"github.com/uptrace/bun/migrate"
)

//go:embed migrations/*.sql
var sqlMigrations embed.FS

// Migrations holds the schema for users, customers and invoices.
var Migrations = migrate.NewMigrations()

func init() {
	dir, err := fs.Sub(sqlMigrations, "migrations")
	if err != nil {
		panic(err)
	}

	if err := Migrations.Discover(dir); err != nil {
		panic(fmt.Sprintf("discovering migrations: %v", err))
	}
}

func newMigrator(ctx context.Context, db *sql.DB) (*migrate.Migrator, error) {
	bdb := bun.NewDB(db, pgdialect.New())
	// BUNDEBUG=1 logs failed queries, BUNDEBUG=2 logs all of them.
	bdb.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithEnabled(false),
		bundebug.FromEnv("BUNDEBUG"),
	))

	m := migrate.NewMigrator(bdb, Migrations)
	if err := m.Init(ctx); err != nil {
		return nil, fmt.Errorf("initializing migrator: %w", err)
	}

	return m, nil
}

// Migrate applies all pending migrations and returns the names of the ones it ran.
func Migrate(ctx context.Context, db *sql.DB) ([]string, error) {
	m, err := newMigrator(ctx, db)
	if err != nil {
		return nil, err
	}

	if err := m.Lock(ctx); err != nil {
		return nil, fmt.Errorf("locking migrations: %w", err)
	}
	defer m.Unlock(ctx) //nolint:errcheck

	group, err := m.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrating: %w", err)
	}

	if group.IsZero() {
		slog.InfoContext(ctx, "no new migrations")
		return nil, nil
	}

	slog.InfoContext(ctx, "migrated", "group", group.String())

	return names(group), nil
}

// Rollback reverts the last applied migration group.
func Rollback(ctx context.Context, db *sql.DB) ([]string, error) {
	m, err := newMigrator(ctx, db)
	if err != nil {
		return nil, err
	}

	if err := m.Lock(ctx); err != nil {
		return nil, fmt.Errorf("locking migrations: %w", err)
	}
	defer m.Unlock(ctx) //nolint:errcheck

	group, err := m.Rollback(ctx)
	if err != nil {
		return nil, fmt.Errorf("rolling back: %w", err)
	}

	if group.IsZero() {
		slog.InfoContext(ctx, "nothing to roll back")
		return nil, nil
	}

	slog.InfoContext(ctx, "rolled back", "group", group.String())

	return names(group), nil
}

func names(group *migrate.MigrationGroup) []string {
	out := make([]string, len(group.Migrations))
	for i, m := range group.Migrations {
		out[i] = m.Name
	}

	return out
}
