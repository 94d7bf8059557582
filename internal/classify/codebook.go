package classify

import (
	"fmt"
	"strings"

	"github.com/gyeh/laplan/internal/model"
	"github.com/gyeh/laplan/internal/parquetread"
	"github.com/gyeh/laplan/internal/registry"
	"github.com/gyeh/laplan/internal/zoning"
)

// Codebook holds hand-coded records for zoning strings that no parse
// strategy handles, keyed by the trimmed zoning string.
type Codebook struct {
	entries map[string]zoning.ZoningRecord
}

// NewCodebook validates rows against reg and builds a Codebook.
// Codes outside the vocabularies are tagged invalid the same way the
// parser tags them; duplicate or empty keys are an error.
func NewCodebook(reg *registry.Registry, rows []model.CodebookRow) (*Codebook, error) {
	if reg == nil {
		reg = registry.Default()
	}
	cb := &Codebook{entries: make(map[string]zoning.ZoningRecord, len(rows))}
	for i, row := range rows {
		key := strings.TrimSpace(row.Zoning)
		if key == "" {
			return nil, fmt.Errorf("codebook row %d: empty zoning string", i+1)
		}
		if _, dup := cb.entries[key]; dup {
			return nil, fmt.Errorf("codebook row %d: duplicate zoning string %q", i+1, key)
		}
		cb.entries[key] = codebookRecord(reg, row)
	}
	return cb, nil
}

// LoadCodebook reads a codebook Parquet file.
func LoadCodebook(reg *registry.Registry, path string) (*Codebook, error) {
	rows, err := parquetread.ReadAll[model.CodebookRow](path)
	if err != nil {
		return nil, fmt.Errorf("load codebook: %w", err)
	}
	return NewCodebook(reg, rows)
}

// Lookup returns the hand-coded record for raw.
func (cb *Codebook) Lookup(raw string) (zoning.ZoningRecord, bool) {
	rec, ok := cb.entries[strings.TrimSpace(raw)]
	if !ok {
		return zoning.ZoningRecord{}, false
	}
	// Slices are shared between lookups; hand out copies.
	rec.Overlays = append([]string(nil), rec.Overlays...)
	rec.InvalidOverlays = append([]string(nil), rec.InvalidOverlays...)
	return rec, true
}

// Len returns the number of entries.
func (cb *Codebook) Len() int {
	return len(cb.entries)
}

func codebookRecord(reg *registry.Registry, row model.CodebookRow) zoning.ZoningRecord {
	rec := zoning.ZoningRecord{
		Qualified:   row.Q,
		Tentative:   row.T,
		HeightLimit: row.D,
		Strategy:    zoning.StrategyCodebook,
	}

	if zc := strings.TrimSpace(row.ZoneClass); zc != "" {
		if reg.IsZoneClass(zc) {
			rec.ZoneClass = zc
		} else {
			rec.ZoneClass = zoning.Invalid
			rec.InvalidZoneClass = zc
		}
	}
	if h := trimmed(row.HeightDistrict); h != "" {
		if reg.IsHeightDistrict(h) {
			rec.HeightDistrict = h
		} else {
			rec.HeightDistrict = zoning.Invalid
			rec.InvalidHeightDistrict = h
		}
	}
	if sp := trimmed(row.SpecificPlan); sp != "" {
		if reg.IsSpecificPlan(sp) {
			rec.SpecificPlan = sp
		} else {
			rec.SpecificPlan = zoning.Invalid
			rec.InvalidSpecificPlan = sp
		}
	}
	if ov := trimmed(row.Overlays); ov != "" {
		for _, o := range strings.Split(ov, "-") {
			o = strings.TrimSpace(o)
			if o == "" {
				continue
			}
			if reg.IsOverlay(o) {
				rec.Overlays = append(rec.Overlays, o)
			} else {
				rec.Overlays = append(rec.Overlays, zoning.Invalid)
				rec.InvalidOverlays = append(rec.InvalidOverlays, o)
			}
		}
	}
	return rec
}

func trimmed(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}
