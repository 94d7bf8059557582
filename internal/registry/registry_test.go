package registry

import "testing"

func TestDefault_Membership(t *testing.T) {
	r := Default()

	if !r.IsPrefix("CPC") || r.IsPrefix("ZZZ") {
		t.Error("prefix membership wrong for CPC/ZZZ")
	}
	if !r.IsSuffix("EIR") || !r.IsSuffix("ZV") {
		t.Error("expected EIR and ZV to be suffix codes")
	}
	if !r.IsZoneClass("C2") || !r.IsZoneClass("RD1.5") || r.IsZoneClass("ZZ") {
		t.Error("zone class membership wrong")
	}
	if !r.IsHeightDistrict("1VL") || r.IsHeightDistrict("2VL") {
		t.Error("height district membership wrong")
	}
	if !r.IsOverlay("CDO") || !r.IsOverlay("RIO") {
		t.Error("expected CDO and RIO overlays")
	}
	if !r.IsSpecificPlan("CEC") {
		t.Error("expected CEC specific plan")
	}
}

func TestDefault_AmbiguousAreSuffixes(t *testing.T) {
	r := Default()
	for _, code := range r.Ambiguous().Codes() {
		if !r.IsSuffix(code) {
			t.Errorf("ambiguous code %s is not a suffix", code)
		}
	}
	if !r.IsAmbiguous("EIR") {
		t.Error("EIR should be ambiguous")
	}
}

func TestZoneClassRank(t *testing.T) {
	r := Default()

	os, ok := r.ZoneClassRank("OS")
	if !ok || os != 0 {
		t.Errorf("OS rank: got %d,%v", os, ok)
	}
	r1, _ := r.ZoneClassRank("R1")
	m3, _ := r.ZoneClassRank("M3")
	if r1 >= m3 {
		t.Errorf("R1 (%d) should rank below M3 (%d)", r1, m3)
	}
	if _, ok := r.ZoneClassRank("CW"); ok {
		t.Error("CW should be unranked")
	}
}

func TestExtend_DoesNotMutate(t *testing.T) {
	base := Default()
	ext, err := base.Extend(Extension{
		Suffixes:    []string{"HHH"},
		ZoneClasses: []string{"RX1"},
		ZoneRanks:   map[string]int{"RX1": 12},
	})
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	if !ext.IsSuffix("HHH") || !ext.IsZoneClass("RX1") {
		t.Error("extension codes missing from extended registry")
	}
	if base.IsSuffix("HHH") || base.IsZoneClass("RX1") {
		t.Error("base registry was mutated")
	}
	if rank, ok := ext.ZoneClassRank("RX1"); !ok || rank != 12 {
		t.Errorf("RX1 rank: got %d,%v", rank, ok)
	}
	if ext.Suffixes().Index("HHH") != ext.Suffixes().Len()-1 {
		t.Error("extension suffix should be appended after built-in codes")
	}
}

func TestExtend_RejectsExcludedHeight(t *testing.T) {
	if _, err := Default().Extend(Extension{HeightDistricts: []string{"2VL"}}); err == nil {
		t.Fatal("expected error for excluded height district")
	}
}

func TestNew_Validation(t *testing.T) {
	t.Run("ambiguous_not_suffix", func(t *testing.T) {
		_, err := New(Sets{Suffixes: []string{"CU"}, Ambiguous: []string{"EIR"}})
		if err == nil {
			t.Fatal("expected error")
		}
	})
	t.Run("separator_in_code", func(t *testing.T) {
		_, err := New(Sets{Suffixes: []string{"CU-B"}})
		if err == nil {
			t.Fatal("expected error")
		}
	})
	t.Run("rank_for_unknown_zone", func(t *testing.T) {
		_, err := New(Sets{ZoneClasses: []string{"R1"}, ZoneRanks: map[string]int{"R9": 1}})
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestVocabulary(t *testing.T) {
	v := NewVocabulary("B", "A", "B", "", "C")
	if v.Len() != 3 {
		t.Fatalf("expected 3 codes, got %d", v.Len())
	}
	codes := v.Codes()
	if codes[0] != "B" || codes[1] != "A" || codes[2] != "C" {
		t.Errorf("unexpected order: %v", codes)
	}
	codes[0] = "Z"
	if v.Contains("Z") || !v.Contains("B") {
		t.Error("Codes must return a copy")
	}
	w := v.Without(NewVocabulary("A"))
	if w.Contains("A") || w.Len() != 2 {
		t.Errorf("Without: %v", w.Codes())
	}
}
