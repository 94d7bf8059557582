package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/laplan/internal/model"
	embedsql "github.com/gyeh/laplan/internal/sql"
)

// Cleanup deletes staging rows for the given batch.
func Cleanup(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, kind model.TableKind, batchID uuid.UUID) error {
	start := time.Now()

	deleted, err := DeleteStagingBatch(ctx, pool, kind, batchID)
	if err != nil {
		return err
	}

	log.Info().
		Int64("rows_deleted", deleted).
		Dur("duration", time.Since(start)).
		Msg("staging cleanup complete")

	return nil
}

// DeleteStagingBatch deletes staging rows for a specific batch from every
// staging table kind writes to.
func DeleteStagingBatch(ctx context.Context, pool *pgxpool.Pool, kind model.TableKind, batchID uuid.UUID) (int64, error) {
	var queries []string
	switch kind {
	case model.KindPCTS:
		queries = []string{embedsql.DeleteStagingCases, embedsql.DeleteStagingCaseCodes}
	case model.KindZoning:
		queries = []string{embedsql.DeleteStagingZoning}
	default:
		return 0, fmt.Errorf("unsupported kind %q", kind.Name)
	}

	var deleted int64
	for _, q := range queries {
		tag, err := pool.Exec(ctx, q, batchID)
		if err != nil {
			return deleted, fmt.Errorf("delete staging batch: %w", err)
		}
		deleted += tag.RowsAffected()
	}
	return deleted, nil
}
