package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/laplan/internal/classify"
	"github.com/gyeh/laplan/internal/model"
	"github.com/gyeh/laplan/internal/parquetread"
	"github.com/gyeh/laplan/internal/pcts"
)

// PrepareOptions controls how a PCTS table is subset before staging or
// export. Zoning tables ignore it.
type PrepareOptions struct {
	Filter                classify.Filter
	RollUp                bool
	KeepChildEntitlements bool
}

// PrepareResult holds metrics from reading and classifying one file.
type PrepareResult struct {
	RowsRead         int64
	RowsFiltered     int64
	RowsUnparsed     int64
	StrategyCounts   map[string]int64
	DurationRead     time.Duration
	DurationClassify time.Duration
}

// PrepareCases reads a PCTS Parquet file, classifies every case number and
// applies the filter and child roll-up from opts.
func PrepareCases(ctx context.Context, log zerolog.Logger, cls *classify.Classifier, path string, opts PrepareOptions) (*classify.CaseTable, *PrepareResult, error) {
	start := time.Now()
	rows, err := parquetread.ReadAll[model.CaseRow](path)
	if err != nil {
		return nil, nil, fmt.Errorf("read cases: %w", err)
	}
	res := &PrepareResult{RowsRead: int64(len(rows)), DurationRead: time.Since(start)}

	start = time.Now()
	tbl, err := cls.ClassifyCaseRows(ctx, rows)
	if err != nil {
		return nil, nil, fmt.Errorf("classify cases: %w", err)
	}
	if !opts.Filter.IsZero() {
		if tbl, err = opts.Filter.Apply(cls.Registry(), tbl); err != nil {
			return nil, nil, err
		}
	}
	if opts.RollUp {
		if tbl, err = classify.RollUpChildren(tbl, opts.KeepChildEntitlements); err != nil {
			return nil, nil, err
		}
	}
	res.DurationClassify = time.Since(start)
	res.RowsFiltered = res.RowsRead - int64(tbl.Len())

	res.StrategyCounts = make(map[string]int64)
	for _, rec := range tbl.Records {
		s := rec.Strategy
		if s == "" {
			s = pcts.StrategyNone
		}
		res.StrategyCounts[string(s)]++
		if !rec.Parsed() {
			res.RowsUnparsed++
		}
	}

	log.Info().
		Int64("rows_read", res.RowsRead).
		Int64("rows_filtered", res.RowsFiltered).
		Int64("rows_unparsed", res.RowsUnparsed).
		Int("columns", len(tbl.Columns)).
		Dur("duration", res.DurationRead+res.DurationClassify).
		Msg("cases classified")

	return tbl, res, nil
}

// PrepareZoning reads a zoning Parquet file and classifies every zoning
// string.
func PrepareZoning(ctx context.Context, log zerolog.Logger, cls *classify.Classifier, path string) (*classify.ZoningTable, *PrepareResult, error) {
	start := time.Now()
	rows, err := parquetread.ReadAll[model.ZoningRow](path)
	if err != nil {
		return nil, nil, fmt.Errorf("read zoning: %w", err)
	}
	res := &PrepareResult{RowsRead: int64(len(rows)), DurationRead: time.Since(start)}

	start = time.Now()
	tbl, err := cls.ClassifyZoningRows(ctx, rows)
	if err != nil {
		return nil, nil, fmt.Errorf("classify zoning: %w", err)
	}
	res.DurationClassify = time.Since(start)

	res.StrategyCounts = make(map[string]int64)
	for s, n := range tbl.StrategyCounts() {
		res.StrategyCounts[string(s)] += int64(n)
	}
	for _, rec := range tbl.Records {
		if !rec.Parsed() {
			res.RowsUnparsed++
		}
	}

	log.Info().
		Int64("rows_read", res.RowsRead).
		Int64("rows_unparsed", res.RowsUnparsed).
		Dur("duration", res.DurationRead+res.DurationClassify).
		Msg("zoning classified")

	return tbl, res, nil
}
