package db

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/gyeh/laplan/internal/sql"
)

// ApplyMigrations runs all embedded SQL migrations in filename order, each in
// its own transaction. All DDL uses IF NOT EXISTS so migrations are idempotent.
func ApplyMigrations(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	names, err := fs.Glob(embedsql.Migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	slices.Sort(names)

	for _, name := range names {
		data, err := fs.ReadFile(embedsql.Migrations, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}

		base := path.Base(name)
		log.Info().Str("migration", base).Msg("applying migration")
		err = WithTx(ctx, pool, func(tx pgx.Tx) error {
			_, err := tx.Exec(ctx, string(data))
			return err
		})
		if err != nil {
			return fmt.Errorf("execute migration %s: %w", base, err)
		}
	}

	log.Info().Int("count", len(names)).Msg("all migrations applied")
	return nil
}
