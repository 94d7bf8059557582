package classify

import (
	"context"
	"fmt"
	"time"

	"github.com/gyeh/laplan/internal/model"
	"github.com/gyeh/laplan/internal/zoning"
)

// NoRank marks a zone class without a restrictiveness rank.
const NoRank = -1

// ZoningTable is a classified batch of zoning strings.
type ZoningTable struct {
	Rows    []model.ZoningRow
	Raws    []string
	Records []zoning.ZoningRecord
	// Ranks holds the zone class rank per row, or NoRank.
	Ranks   []int
	Columns []Column
}

// Len returns the number of rows.
func (t *ZoningTable) Len() int {
	return len(t.Records)
}

// Column returns the indicator column for kind and code.
func (t *ZoningTable) Column(kind ColumnKind, code string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Kind == kind && t.Columns[i].Code == code {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// StrategyCounts tallies records by the strategy that produced them.
func (t *ZoningTable) StrategyCounts() map[zoning.Strategy]int {
	counts := make(map[zoning.Strategy]int)
	for _, r := range t.Records {
		counts[r.Strategy]++
	}
	return counts
}

// ClassifyZoning parses raws in parallel, applies the codebook to rows no
// strategy handled, and builds one overlay indicator column per overlay code.
func (c *Classifier) ClassifyZoning(ctx context.Context, raws []string) (*ZoningTable, error) {
	start := time.Now()
	overlays := c.reg.Overlays().Codes()
	t := &ZoningTable{
		Raws:    raws,
		Records: make([]zoning.ZoningRecord, len(raws)),
		Ranks:   make([]int, len(raws)),
		Columns: newColumns(len(raws), columnGroup{KindOverlay, overlays}),
	}
	overlayCol := make(map[string]int, len(overlays))
	for i, code := range overlays {
		overlayCol[code] = i
	}

	err := c.parallelRange(ctx, len(raws), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			raw := c.prepare(raws[i])
			rec := c.zoning.Parse(raw)
			if !rec.Parsed() && c.opts.Codebook != nil {
				if fix, ok := c.opts.Codebook.Lookup(raw); ok {
					rec = fix
				}
			}
			t.Records[i] = rec
			t.Ranks[i] = NoRank
			if rank, ok := c.reg.ZoneClassRank(rec.ZoneClass); ok {
				t.Ranks[i] = rank
			}
			for _, o := range rec.Overlays {
				if col, ok := overlayCol[o]; ok {
					t.Columns[col].Values[i] = true
				}
			}
		}
	})
	if err != nil {
		return nil, fmt.Errorf("classify zoning: %w", err)
	}

	c.log.Debug().
		Int("rows", len(raws)).
		Int("columns", len(t.Columns)).
		Dur("duration", time.Since(start)).
		Msg("zoning strings classified")
	return t, nil
}

// ClassifyZoningRows classifies the zoning column of rows.
func (c *Classifier) ClassifyZoningRows(ctx context.Context, rows []model.ZoningRow) (*ZoningTable, error) {
	raws := make([]string, len(rows))
	for i := range rows {
		raws[i] = rows[i].Zoning
	}
	t, err := c.ClassifyZoning(ctx, raws)
	if err != nil {
		return nil, err
	}
	t.Rows = rows
	return t, nil
}
