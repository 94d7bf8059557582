package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/laplan/internal/classify"
	"github.com/gyeh/laplan/internal/db"
	"github.com/gyeh/laplan/internal/model"
	"github.com/gyeh/laplan/internal/normalize"
)

const copyBufferSize = 1024

var (
	stageCasesTable     = pgx.Identifier{"ingest", "stage_pcts_cases"}
	stageCaseCodesTable = pgx.Identifier{"ingest", "stage_case_codes"}
	stageZoningTable    = pgx.Identifier{"ingest", "stage_zoning"}
)

// StageResult holds metrics from the staging phase.
type StageResult struct {
	PrepareResult
	RowsStaged   int64
	CodesStaged  int64
	DurationCopy time.Duration
}

// Stage reads and classifies the file, then COPY-loads the parsed rows into
// the staging tables for pf's kind via a channel-backed CopyFromSource.
func Stage(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cls *classify.Classifier, pf *PreflightResult, opts PrepareOptions) (*StageResult, error) {
	switch pf.Kind {
	case model.KindPCTS:
		tbl, prep, err := PrepareCases(ctx, log, cls, pf.FilePath, opts)
		if err != nil {
			return nil, err
		}
		return stageCases(ctx, pool, log, pf, tbl, prep)
	case model.KindZoning:
		tbl, prep, err := PrepareZoning(ctx, log, cls, pf.FilePath)
		if err != nil {
			return nil, err
		}
		return stageZoning(ctx, pool, log, pf, tbl, prep)
	default:
		return nil, fmt.Errorf("stage: unsupported kind %q", pf.Kind.Name)
	}
}

func stageCases(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult, tbl *classify.CaseTable, prep *PrepareResult) (*StageResult, error) {
	start := time.Now()

	rowsStaged, err := db.CopyFromChannel(ctx, pool, stageCasesTable, model.CaseStagingColumns(), copyBufferSize,
		func(ctx context.Context, ch chan<- *model.CaseStagingRow) error {
			for i := range tbl.Rows {
				row := normalize.ToCaseStagingRow(&tbl.Rows[i], tbl.Records[i],
					pf.IngestBatchID, pf.SourceFileID, int64(tbl.Source[i]+1))
				select {
				case ch <- row:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("stage cases: %w", err)
	}

	codesStaged, err := db.CopyFromChannel(ctx, pool, stageCaseCodesTable, model.CaseCodeColumns(), copyBufferSize,
		func(ctx context.Context, ch chan<- *model.CaseCodeRow) error {
			for _, col := range tbl.Columns {
				for i, set := range col.Values {
					if !set {
						continue
					}
					row := &model.CaseCodeRow{
						IngestBatchID: pf.IngestBatchID,
						SourceFileID:  pf.SourceFileID,
						CaseID:        tbl.Rows[i].CaseID,
						CodeKind:      string(col.Kind),
						Code:          col.Code,
					}
					select {
					case ch <- row:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("stage case codes: %w", err)
	}

	dur := time.Since(start)
	log.Info().
		Int64("rows_staged", rowsStaged).
		Int64("codes_staged", codesStaged).
		Str("duration", dur.String()).
		Float64("rows_per_sec", float64(rowsStaged)/dur.Seconds()).
		Msg("staging complete")

	return &StageResult{
		PrepareResult: *prep,
		RowsStaged:    rowsStaged,
		CodesStaged:   codesStaged,
		DurationCopy:  dur,
	}, nil
}

func stageZoning(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult, tbl *classify.ZoningTable, prep *PrepareResult) (*StageResult, error) {
	start := time.Now()

	rowsStaged, err := db.CopyFromChannel(ctx, pool, stageZoningTable, model.ZoningStagingColumns(), copyBufferSize,
		func(ctx context.Context, ch chan<- *model.ZoningStagingRow) error {
			for i := range tbl.Rows {
				var rank *int32
				if r := tbl.Ranks[i]; r != classify.NoRank {
					v := int32(r)
					rank = &v
				}
				row := normalize.ToZoningStagingRow(&tbl.Rows[i], tbl.Records[i], rank,
					pf.IngestBatchID, pf.SourceFileID, int64(i+1))
				select {
				case ch <- row:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("stage zoning: %w", err)
	}

	dur := time.Since(start)
	log.Info().
		Int64("rows_staged", rowsStaged).
		Str("duration", dur.String()).
		Float64("rows_per_sec", float64(rowsStaged)/dur.Seconds()).
		Msg("staging complete")

	return &StageResult{
		PrepareResult: *prep,
		RowsStaged:    rowsStaged,
		DurationCopy:  dur,
	}, nil
}
