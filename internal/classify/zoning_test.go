package classify

import (
	"context"
	"testing"

	"github.com/gyeh/laplan/internal/model"
	"github.com/gyeh/laplan/internal/zoning"
)

func strPtr(s string) *string { return &s }

func TestClassifyZoning_Indicators(t *testing.T) {
	c := newTestClassifier(Options{})
	tbl, err := c.ClassifyZoning(context.Background(), []string{
		"(T)(CEC)C2-1VL-CDO-RIO",
		"R1-1",
		"nonsense!",
	})
	if err != nil {
		t.Fatalf("ClassifyZoning: %v", err)
	}

	if len(tbl.Columns) != c.Registry().Overlays().Len() {
		t.Fatalf("columns: got %d, want one per overlay", len(tbl.Columns))
	}
	cdo, ok := tbl.Column(KindOverlay, "CDO")
	if !ok {
		t.Fatal("missing overlay_cdo")
	}
	if !cdo.Values[0] || cdo.Values[1] || cdo.Values[2] {
		t.Errorf("overlay_cdo: got %v", cdo.Values)
	}

	if tbl.Ranks[0] != 34 || tbl.Ranks[1] != 11 {
		t.Errorf("ranks: got %v", tbl.Ranks)
	}
	if tbl.Ranks[2] != NoRank {
		t.Errorf("unparsed row rank: got %d", tbl.Ranks[2])
	}

	counts := tbl.StrategyCounts()
	if counts[zoning.StrategyFull] != 2 || counts[zoning.StrategyNone] != 1 {
		t.Errorf("strategy counts: %v", counts)
	}
}

func TestClassifyZoning_Codebook(t *testing.T) {
	cb, err := NewCodebook(nil, []model.CodebookRow{
		{Zoning: "R 1-1XL", ZoneClass: "R1", HeightDistrict: strPtr("1XL")},
		{Zoning: "[Q]C2/1", Q: true, ZoneClass: "C2", HeightDistrict: strPtr("1"), Overlays: strPtr("CDO-BOGUS")},
	})
	if err != nil {
		t.Fatalf("NewCodebook: %v", err)
	}

	c := newTestClassifier(Options{Codebook: cb})
	tbl, err := c.ClassifyZoning(context.Background(), []string{"R 1-1XL", " [Q]C2/1 ", "C2-1", "???"})
	if err != nil {
		t.Fatalf("ClassifyZoning: %v", err)
	}

	first := tbl.Records[0]
	if first.Strategy != zoning.StrategyCodebook || first.ZoneClass != "R1" || first.HeightDistrict != "1XL" {
		t.Errorf("codebook record: %+v", first)
	}
	second := tbl.Records[1]
	if !second.Qualified || second.ZoneClass != "C2" {
		t.Errorf("codebook record: %+v", second)
	}
	if len(second.Overlays) != 2 || second.Overlays[1] != zoning.Invalid || second.InvalidOverlays[0] != "BOGUS" {
		t.Errorf("codebook overlays: %v / %v", second.Overlays, second.InvalidOverlays)
	}
	if cdo, _ := tbl.Column(KindOverlay, "CDO"); !cdo.Values[1] {
		t.Error("codebook overlays should feed the indicator columns")
	}
	if tbl.Records[2].Strategy != zoning.StrategyFull {
		t.Errorf("parsed strings must not be overridden: %q", tbl.Records[2].Strategy)
	}
	if tbl.Records[3].Strategy != zoning.StrategyNone {
		t.Errorf("unknown string: %q", tbl.Records[3].Strategy)
	}
}

func TestNewCodebook_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows []model.CodebookRow
	}{
		{"empty key", []model.CodebookRow{{Zoning: "  ", ZoneClass: "R1"}}},
		{"duplicate", []model.CodebookRow{
			{Zoning: "R1 1", ZoneClass: "R1"},
			{Zoning: "R1 1 ", ZoneClass: "R1"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCodebook(nil, tt.rows); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestCodebook_LookupReturnsCopies(t *testing.T) {
	cb, err := NewCodebook(nil, []model.CodebookRow{
		{Zoning: "X", ZoneClass: "R1", Overlays: strPtr("CDO")},
	})
	if err != nil {
		t.Fatalf("NewCodebook: %v", err)
	}
	a, _ := cb.Lookup("X")
	a.Overlays[0] = "mutated"
	b, _ := cb.Lookup("X")
	if b.Overlays[0] != "CDO" {
		t.Errorf("lookup shares state: %v", b.Overlays)
	}
	if cb.Len() != 1 {
		t.Errorf("Len: got %d", cb.Len())
	}
}
