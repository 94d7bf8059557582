package zoning

import (
	"reflect"
	"testing"

	"github.com/gyeh/laplan/internal/registry"
)

func TestParseZoningString_Full(t *testing.T) {
	z := ParseZoningString("(T)(CEC)C2-1VL-CDO-RIO")

	if z.Strategy != StrategyFull {
		t.Fatalf("strategy: got %q, want %q", z.Strategy, StrategyFull)
	}
	if z.Qualified || !z.Tentative {
		t.Errorf("qualifiers: Q=%v T=%v", z.Qualified, z.Tentative)
	}
	if z.SpecificPlan != "CEC" {
		t.Errorf("specific plan: got %q", z.SpecificPlan)
	}
	if z.ZoneClass != "C2" {
		t.Errorf("zone class: got %q", z.ZoneClass)
	}
	if z.HeightDistrict != "1VL" || z.HeightLimit {
		t.Errorf("height: got %q limit=%v", z.HeightDistrict, z.HeightLimit)
	}
	if !reflect.DeepEqual(z.Overlays, []string{"CDO", "RIO"}) {
		t.Errorf("overlays: got %v", z.Overlays)
	}
}

func TestParseZoningString_HeightLimit(t *testing.T) {
	tests := []struct {
		in     string
		height string
		limit  bool
	}{
		{"C2-1VLD", "1VL", true},
		{"C2-1VL", "1VL", false},
		{"R3-1D-O", "1", true},
		{"M2-2D", "2", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			z := ParseZoningString(tt.in)
			if z.HeightDistrict != tt.height || z.HeightLimit != tt.limit {
				t.Errorf("got height=%q limit=%v, want %q %v", z.HeightDistrict, z.HeightLimit, tt.height, tt.limit)
			}
		})
	}
}

func TestParseZoningString_Qualifiers(t *testing.T) {
	tests := []struct {
		in   string
		q, t bool
	}{
		{"(Q)(T)R1-1", true, true},
		{"(T)(Q)R1-1", true, true},
		{"[Q]R1-1", true, false},
		{"[T][Q]R1-1", true, true},
		{"(QT)R1-1", true, true},
		{"QR1-1", true, false},
		{"(T)R1-1", false, true},
		{"R1-1", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			z := ParseZoningString(tt.in)
			if z.ZoneClass != "R1" {
				t.Fatalf("zone class: got %q", z.ZoneClass)
			}
			if z.Qualified != tt.q || z.Tentative != tt.t {
				t.Errorf("got Q=%v T=%v, want Q=%v T=%v", z.Qualified, z.Tentative, tt.q, tt.t)
			}
		})
	}
}

func TestParseZoningString_InvalidComponents(t *testing.T) {
	z := ParseZoningString("ZZ-1")
	if z.Strategy != StrategyFull {
		t.Fatalf("strategy: got %q", z.Strategy)
	}
	if z.ZoneClass != Invalid || z.InvalidZoneClass != "ZZ" {
		t.Errorf("zone class: got %q raw=%q", z.ZoneClass, z.InvalidZoneClass)
	}
	if z.HeightDistrict != "1" {
		t.Errorf("height must survive an invalid zone class: got %q", z.HeightDistrict)
	}

	h := ParseZoningString("C2-2VL")
	if h.HeightDistrict != Invalid || h.InvalidHeightDistrict != "2VL" {
		t.Errorf("excluded height: got %q raw=%q", h.HeightDistrict, h.InvalidHeightDistrict)
	}

	o := ParseZoningString("C2-1-CDO-XYZ-O")
	if !reflect.DeepEqual(o.Overlays, []string{"CDO", Invalid, "O"}) {
		t.Errorf("overlays: got %v", o.Overlays)
	}
	if !reflect.DeepEqual(o.InvalidOverlays, []string{"XYZ"}) {
		t.Errorf("invalid overlays: got %v", o.InvalidOverlays)
	}
	if !o.HasOverlay("CDO") || o.HasOverlay("XYZ") {
		t.Error("HasOverlay should report valid overlays only")
	}

	p := ParseZoningString("(ABC)C2-1")
	if p.SpecificPlan != Invalid || p.InvalidSpecificPlan != "ABC" {
		t.Errorf("specific plan: got %q raw=%q", p.SpecificPlan, p.InvalidSpecificPlan)
	}
}

func TestParseZoningString_ComponentFallback(t *testing.T) {
	z := ParseZoningString("R1")
	if z.Strategy != StrategyComponent {
		t.Fatalf("strategy: got %q", z.Strategy)
	}
	if z.ZoneClass != "R1" || z.HeightDistrict != "" || z.Overlays != nil {
		t.Errorf("got %+v", z)
	}

	trailing := ParseZoningString("C2-1VL-CDO-(T)")
	if trailing.Strategy != StrategyComponent {
		t.Fatalf("strategy: got %q", trailing.Strategy)
	}
	if !trailing.Tentative || trailing.ZoneClass != "C2" || trailing.HeightDistrict != "1VL" {
		t.Errorf("got %+v", trailing)
	}
	if !reflect.DeepEqual(trailing.Overlays, []string{"CDO"}) {
		t.Errorf("overlays: got %v", trailing.Overlays)
	}

	loose := ParseZoningString("R1-1VLD-")
	if loose.HeightDistrict != "1VL" || !loose.HeightLimit {
		t.Errorf("got %+v", loose)
	}

	extra := ParseZoningString("R1-C2-1-??")
	if extra.ZoneClass != "R1" {
		t.Errorf("first zone class wins: got %q", extra.ZoneClass)
	}
	if !reflect.DeepEqual(extra.Unrecognized, []string{"C2", "??"}) {
		t.Errorf("unrecognized: got %v", extra.Unrecognized)
	}
}

func TestParseZoningString_PlanOnBothSides(t *testing.T) {
	for _, in := range []string{"(CEC)C2(USC)-1", "(CEC)C2(ZZZ)-1"} {
		t.Run(in, func(t *testing.T) {
			first := ParseZoningString(in)
			if first.Strategy != StrategyComponent {
				t.Fatalf("strategy: got %q", first.Strategy)
			}
			if first.SpecificPlan != "CEC" || first.ZoneClass != "C2" || first.HeightDistrict != "1" {
				t.Errorf("got %+v", first)
			}
			if len(first.Unrecognized) != 1 {
				t.Errorf("unrecognized: got %v", first.Unrecognized)
			}
		})
	}
}

func TestParseZoningString_ZoneClassThatIsAlsoPlan(t *testing.T) {
	z := ParseZoningString("R1-1-USC-(T)")
	if z.Strategy != StrategyComponent {
		t.Fatalf("strategy: got %q", z.Strategy)
	}
	if z.ZoneClass != "R1" || z.HeightDistrict != "1" || z.SpecificPlan != "USC" || z.Unrecognized != nil {
		t.Errorf("got %+v", z)
	}

	taken := ParseZoningString("(CEC)R1-1-USC-(T)")
	if taken.SpecificPlan != "CEC" || !reflect.DeepEqual(taken.Unrecognized, []string{"USC"}) {
		t.Errorf("got %+v", taken)
	}
}

func TestParseZoningString_SingleToken(t *testing.T) {
	o := ParseZoningString("CDO")
	if o.Strategy != StrategySingleToken {
		t.Fatalf("strategy: got %q", o.Strategy)
	}
	if !reflect.DeepEqual(o.Overlays, []string{"CDO"}) || o.ZoneClass != "" {
		t.Errorf("got %+v", o)
	}

	p := ParseZoningString("CEC")
	if p.Strategy != StrategySingleToken || p.SpecificPlan != "CEC" {
		t.Errorf("got %+v", p)
	}
}

func TestParseZoningString_Totality(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"1VL",
		"-",
		"---",
		"foo bar",
		"r1-1",
		"Ｒ１-１",
		"()",
		"\x00\xff",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			z := ParseZoningString(in)
			if z.Parsed() {
				t.Errorf("expected no match, got %+v", z)
			}
			if !reflect.DeepEqual(z, ZoningRecord{Strategy: StrategyNone}) {
				t.Errorf("expected default fields, got %+v", z)
			}
		})
	}
}

func TestZoningRecord_Idempotent(t *testing.T) {
	inputs := []string{
		"(Q)(T)R1-1",
		"(T)(Q)R1-1",
		"(T)(CEC)C2-1VLD-CDO-RIO",
		"[Q]C1.5-1XL",
		"C2(CEC)-1",
		"ZZ-2VL-XYZ-CDO",
		"C2-9D",
		"RD1.5-1-O",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			first := ParseZoningString(in)
			if first.Strategy != StrategyFull {
				t.Fatalf("expected a full-grammar match for %q, got %q", in, first.Strategy)
			}
			second := ParseZoningString(first.String())
			if !reflect.DeepEqual(first, second) {
				t.Errorf("re-parse of %q differs:\n first  %+v\n second %+v", first.String(), first, second)
			}
		})
	}
}

func TestParser_CustomRegistry(t *testing.T) {
	reg, err := registry.Default().Extend(registry.Extension{Overlays: []string{"TOD"}})
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	z := NewParser(reg).Parse("C2-1-TOD")
	if !reflect.DeepEqual(z.Overlays, []string{"TOD"}) {
		t.Errorf("extended overlay not recognized: %v", z.Overlays)
	}
	if ParseZoningString("C2-1-TOD").Overlays[0] != Invalid {
		t.Error("default parser must not see extension codes")
	}
}
