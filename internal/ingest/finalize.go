package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/laplan/internal/model"
	embedsql "github.com/gyeh/laplan/internal/sql"
)

// Finalize marks the source file loaded and runs ANALYZE on the tables the
// run touched.
func Finalize(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult, rowCount int64) (time.Duration, error) {
	start := time.Now()

	if _, err := pool.Exec(ctx, embedsql.MarkSourceLoaded, pf.SourceFileID, rowCount); err != nil {
		return 0, fmt.Errorf("mark source file loaded: %w", err)
	}
	log.Info().Int64("source_file_id", pf.SourceFileID).Msg("source file loaded")

	for _, tbl := range analyzeTables(pf.Kind) {
		if _, err := pool.Exec(ctx, "ANALYZE "+tbl.Sanitize()); err != nil {
			return 0, fmt.Errorf("analyze %s: %w", tbl.Sanitize(), err)
		}
	}
	log.Info().Msg("ANALYZE complete")

	return time.Since(start), nil
}

func analyzeTables(kind model.TableKind) []pgx.Identifier {
	serving := pgx.Identifier{"planning", kind.Table}
	switch kind {
	case model.KindPCTS:
		return []pgx.Identifier{serving, {"planning", "case_entitlements"}, stageCasesTable, stageCaseCodesTable}
	case model.KindZoning:
		return []pgx.Identifier{serving, stageZoningTable}
	}
	return nil
}
