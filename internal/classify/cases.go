package classify

import (
	"context"
	"fmt"
	"time"

	"github.com/gyeh/laplan/internal/model"
	"github.com/gyeh/laplan/internal/normalize"
	"github.com/gyeh/laplan/internal/pcts"
	"github.com/gyeh/laplan/internal/registry"
)

// ColumnKind groups indicator columns by the vocabulary they come from.
type ColumnKind string

const (
	KindPrefix  ColumnKind = "prefix"
	KindSuffix  ColumnKind = "suffix"
	KindOverlay ColumnKind = "overlay"
)

// Column is one boolean indicator column, aligned with the table's records.
type Column struct {
	Kind   ColumnKind
	Code   string
	Values []bool
}

// Name returns the column name used in Parquet output, e.g. "suffix_cu".
func (c Column) Name() string {
	return normalize.ColumnName(string(c.Kind), c.Code)
}

// Count returns the number of true cells.
func (c Column) Count() int {
	n := 0
	for _, v := range c.Values {
		if v {
			n++
		}
	}
	return n
}

// CaseTable is a classified batch of case numbers. Rows is nil when the
// batch was built from bare strings.
type CaseTable struct {
	Rows    []model.CaseRow
	Raws    []string
	Records []pcts.CaseIdentifier
	Columns []Column
	// Source holds each row's position in the original input, which
	// survives filtering and roll-up.
	Source []int
}

// Len returns the number of rows.
func (t *CaseTable) Len() int {
	return len(t.Records)
}

// Column returns the indicator column for kind and code.
func (t *CaseTable) Column(kind ColumnKind, code string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Kind == kind && t.Columns[i].Code == code {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// CaseColumnCodes returns the fixed indicator schema for reg: one prefix
// column per prefix code that is not ambiguous, then one suffix column per
// suffix code. The schema depends only on the registry, never on the data.
func CaseColumnCodes(reg *registry.Registry) (prefixes, suffixes []string) {
	for _, code := range reg.Prefixes().Codes() {
		if !reg.IsAmbiguous(code) {
			prefixes = append(prefixes, code)
		}
	}
	return prefixes, reg.Suffixes().Codes()
}

// ClassifyCases parses raws in parallel and builds the indicator columns.
// Output rows are in input order.
func (c *Classifier) ClassifyCases(ctx context.Context, raws []string) (*CaseTable, error) {
	start := time.Now()
	records := make([]pcts.CaseIdentifier, len(raws))
	prefixes, suffixes := CaseColumnCodes(c.reg)
	t := &CaseTable{
		Raws:    raws,
		Records: records,
		Columns: newColumns(len(raws),
			columnGroup{KindPrefix, prefixes},
			columnGroup{KindSuffix, suffixes},
		),
		Source: identity(len(raws)),
	}

	prefixCol := make(map[string]int, len(prefixes))
	for i, code := range prefixes {
		prefixCol[code] = i
	}
	suffixCol := make(map[string]int, len(suffixes))
	for i, code := range suffixes {
		suffixCol[code] = len(prefixes) + i
	}

	err := c.parallelRange(ctx, len(raws), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			rec := c.cases.Parse(c.prepare(raws[i]))
			records[i] = rec
			if !rec.Parsed() {
				continue
			}
			if rec.PrefixValid {
				if col, ok := prefixCol[rec.Prefix]; ok {
					t.Columns[col].Values[i] = true
				}
			}
			for _, s := range rec.Suffixes {
				if col, ok := suffixCol[s]; ok {
					t.Columns[col].Values[i] = true
				}
			}
			// A suffix code typed in the prefix position counts as that suffix.
			if raw := rec.RawPrefix(); c.reg.IsAmbiguous(raw) {
				if col, ok := suffixCol[raw]; ok {
					t.Columns[col].Values[i] = true
				}
			}
		}
	})
	if err != nil {
		return nil, fmt.Errorf("classify cases: %w", err)
	}

	c.log.Debug().
		Int("rows", len(raws)).
		Int("columns", len(t.Columns)).
		Dur("duration", time.Since(start)).
		Msg("cases classified")
	return t, nil
}

// ClassifyCaseRows classifies the case_number column of rows and keeps the
// rows alongside the records for filtering and roll-up.
func (c *Classifier) ClassifyCaseRows(ctx context.Context, rows []model.CaseRow) (*CaseTable, error) {
	raws := make([]string, len(rows))
	for i := range rows {
		raws[i] = rows[i].CaseNumber
	}
	t, err := c.ClassifyCases(ctx, raws)
	if err != nil {
		return nil, err
	}
	t.Rows = rows
	return t, nil
}

// subset returns a new table holding the rows at idx, in idx order.
func (t *CaseTable) subset(idx []int) *CaseTable {
	out := &CaseTable{
		Raws:    make([]string, len(idx)),
		Records: make([]pcts.CaseIdentifier, len(idx)),
		Columns: make([]Column, len(t.Columns)),
		Source:  make([]int, len(idx)),
	}
	if t.Rows != nil {
		out.Rows = make([]model.CaseRow, len(idx))
	}
	for j, i := range idx {
		out.Raws[j] = t.Raws[i]
		out.Source[j] = t.Source[i]
		out.Records[j] = t.Records[i]
		if t.Rows != nil {
			out.Rows[j] = t.Rows[i]
		}
	}
	for c, col := range t.Columns {
		vals := make([]bool, len(idx))
		for j, i := range idx {
			vals[j] = col.Values[i]
		}
		out.Columns[c] = Column{Kind: col.Kind, Code: col.Code, Values: vals}
	}
	return out
}

type columnGroup struct {
	kind  ColumnKind
	codes []string
}

// newColumns allocates all-false columns for every code of every group.
func newColumns(n int, groups ...columnGroup) []Column {
	var cols []Column
	for _, g := range groups {
		for _, code := range g.codes {
			cols = append(cols, Column{Kind: g.kind, Code: code, Values: make([]bool, n)})
		}
	}
	return cols
}

func identity(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
