package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/laplan/internal/db"
	"github.com/gyeh/laplan/internal/model"
	embedsql "github.com/gyeh/laplan/internal/sql"
)

// TransformResult holds metrics from the staging to serving move.
type TransformResult struct {
	RowsInserted  int64
	CodesInserted int64
	RowsReplaced  int64
	Duration      time.Duration
}

// Transform replaces the serving rows of pf's source file with the rows of
// its staging batch, in one transaction.
func Transform(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult) (*TransformResult, error) {
	start := time.Now()
	res := &TransformResult{}

	err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
		switch pf.Kind {
		case model.KindPCTS:
			return transformCases(ctx, tx, pf, res)
		case model.KindZoning:
			return transformZoning(ctx, tx, pf, res)
		default:
			return fmt.Errorf("unsupported kind %q", pf.Kind.Name)
		}
	})
	if err != nil {
		return nil, err
	}

	res.Duration = time.Since(start)
	log.Info().
		Int64("rows_inserted", res.RowsInserted).
		Int64("codes_inserted", res.CodesInserted).
		Int64("rows_replaced", res.RowsReplaced).
		Str("duration", res.Duration.String()).
		Float64("rows_per_sec", float64(res.RowsInserted)/res.Duration.Seconds()).
		Msg("transform complete")

	return res, nil
}

func transformCases(ctx context.Context, tx pgx.Tx, pf *PreflightResult, res *TransformResult) error {
	tag, err := tx.Exec(ctx, embedsql.DeleteServingCases, pf.SourceFileID)
	if err != nil {
		return fmt.Errorf("delete serving cases: %w", err)
	}
	res.RowsReplaced = tag.RowsAffected()

	if tag, err = tx.Exec(ctx, embedsql.TransformPCTSCases, pf.IngestBatchID); err != nil {
		return fmt.Errorf("transform cases: %w", err)
	}
	res.RowsInserted = tag.RowsAffected()

	if tag, err = tx.Exec(ctx, embedsql.TransformCaseEntitlements, pf.IngestBatchID); err != nil {
		return fmt.Errorf("transform case entitlements: %w", err)
	}
	res.CodesInserted = tag.RowsAffected()
	return nil
}

func transformZoning(ctx context.Context, tx pgx.Tx, pf *PreflightResult, res *TransformResult) error {
	tag, err := tx.Exec(ctx, embedsql.DeleteServingZoning, pf.SourceFileID)
	if err != nil {
		return fmt.Errorf("delete serving zoning: %w", err)
	}
	res.RowsReplaced = tag.RowsAffected()

	if tag, err = tx.Exec(ctx, embedsql.TransformZoning, pf.IngestBatchID); err != nil {
		return fmt.Errorf("transform zoning: %w", err)
	}
	res.RowsInserted = tag.RowsAffected()
	return nil
}
