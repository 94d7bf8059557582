package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/laplan/internal/classify"
	"github.com/gyeh/laplan/internal/config"
	"github.com/gyeh/laplan/internal/model"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the full ingest pipeline: preflight → stage → dimensions →
// transform → finalize → cleanup. cls must be built from the registry the
// config describes.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config, cls *classify.Classifier) (*model.IngestSummary, error) {
	totalStart := time.Now()

	kind, err := cfg.TableKind()
	if err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}
	filter, err := cfg.BuildFilter(cls.Registry())
	if err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}
	opts := PrepareOptions{
		Filter:                filter,
		RollUp:                cfg.RollUp,
		KeepChildEntitlements: cfg.KeepChildEntitlements,
	}

	// Phase 1: Preflight
	log.Info().Str("file", cfg.FilePath).Str("kind", kind.Name).Msg("starting preflight")
	pf, err := Preflight(ctx, pool, log, kind, cfg.FilePath, cfg.Force)
	if err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}

	if pf.AlreadyLoaded {
		log.Info().
			Int64("source_file_id", pf.SourceFileID).
			Str("sha256", pf.FileSHA256).
			Msg("file already imported, skipping (use --force to re-import)")
		return &model.IngestSummary{
			FilePath:      pf.FilePath,
			Kind:          kind.Name,
			FileSHA256:    pf.FileSHA256,
			SourceFileID:  pf.SourceFileID,
			IngestBatchID: pf.IngestBatchID.String(),
			DurationTotal: time.Since(totalStart),
		}, nil
	}

	fail := func(phase string, err error) error {
		if uerr := UpdateStatus(ctx, pool, pf.SourceFileID, StatusFailed); uerr != nil {
			log.Warn().Err(uerr).Msg("could not mark source file failed")
		}
		return &PipelineError{Phase: phase, Err: err}
	}

	// Phase 2: Stage
	log.Info().Msg("starting staging")
	if err := UpdateStatus(ctx, pool, pf.SourceFileID, StatusStaging); err != nil {
		return nil, &PipelineError{Phase: "stage", Err: err}
	}

	stageResult, err := Stage(ctx, pool, log, cls, pf, opts)
	if err != nil {
		if _, derr := DeleteStagingBatch(ctx, pool, kind, pf.IngestBatchID); derr != nil {
			log.Warn().Err(derr).Msg("could not remove partial staging batch")
		}
		return nil, fail("stage", err)
	}

	if err := UpdateStatus(ctx, pool, pf.SourceFileID, StatusStaged); err != nil {
		return nil, &PipelineError{Phase: "stage", Err: err}
	}

	// Phase 3: Dimension upserts
	log.Info().Msg("upserting dimensions")
	if err := UpsertDimensions(ctx, pool, log, cls.Registry()); err != nil {
		return nil, fail("dimensions", err)
	}

	// Phase 4: Transform
	log.Info().Msg("starting transform")
	if err := UpdateStatus(ctx, pool, pf.SourceFileID, StatusTransforming); err != nil {
		return nil, &PipelineError{Phase: "transform", Err: err}
	}

	transformResult, err := Transform(ctx, pool, log, pf)
	if err != nil {
		return nil, fail("transform", err)
	}

	if err := UpdateStatus(ctx, pool, pf.SourceFileID, StatusTransformed); err != nil {
		return nil, &PipelineError{Phase: "transform", Err: err}
	}

	// Phase 5: Finalize
	log.Info().Msg("finalizing")
	finalizeDur, err := Finalize(ctx, pool, log, pf, transformResult.RowsInserted)
	if err != nil {
		return nil, fail("finalize", err)
	}

	// Phase 6: Cleanup staging
	if !cfg.KeepStaging {
		log.Info().Msg("cleaning up staging")
		if err := Cleanup(ctx, pool, log, kind, pf.IngestBatchID); err != nil {
			log.Warn().Err(err).Msg("staging cleanup failed (non-fatal)")
		}
	}

	summary := &model.IngestSummary{
		FilePath:            pf.FilePath,
		Kind:                kind.Name,
		FileSHA256:          pf.FileSHA256,
		SourceFileID:        pf.SourceFileID,
		IngestBatchID:       pf.IngestBatchID.String(),
		RowsRead:            stageResult.RowsRead,
		RowsFiltered:        stageResult.RowsFiltered,
		RowsStaged:          stageResult.RowsStaged,
		RowsUnparsed:        stageResult.RowsUnparsed,
		RowsInsertedServing: transformResult.RowsInserted,
		CodesInserted:       transformResult.CodesInserted,
		StrategyCounts:      stageResult.StrategyCounts,
		DurationRead:        stageResult.DurationRead,
		DurationClassify:    stageResult.DurationClassify,
		DurationCopy:        stageResult.DurationCopy,
		DurationTransform:   transformResult.Duration,
		DurationFinalize:    finalizeDur,
		DurationTotal:       time.Since(totalStart),
	}

	log.Info().
		Int64("rows_read", summary.RowsRead).
		Int64("rows_filtered", summary.RowsFiltered).
		Int64("rows_staged", summary.RowsStaged).
		Int64("rows_serving", summary.RowsInsertedServing).
		Int64("rows_unparsed", summary.RowsUnparsed).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("ingest pipeline complete")

	return summary, nil
}
