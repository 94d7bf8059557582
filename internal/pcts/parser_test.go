package pcts

import (
	"reflect"
	"testing"

	"github.com/gyeh/laplan/internal/registry"
)

func TestParseCaseNumber_General(t *testing.T) {
	c := ParseCaseNumber("  CPC-2015-1234-CU-SPR  ")

	if c.Strategy != StrategyGeneral {
		t.Fatalf("strategy: got %q, want %q", c.Strategy, StrategyGeneral)
	}
	if c.Prefix != "CPC" || !c.PrefixValid || c.InvalidPrefix != "" {
		t.Errorf("prefix: got %q valid=%v invalid=%q", c.Prefix, c.PrefixValid, c.InvalidPrefix)
	}
	if c.Year == nil || *c.Year != 2015 {
		t.Errorf("year: got %v, want 2015", c.Year)
	}
	if c.SequenceID == nil || *c.SequenceID != 1234 {
		t.Errorf("sequence: got %v, want 1234", c.SequenceID)
	}
	if !reflect.DeepEqual(c.Suffixes, []string{"CU", "SPR"}) {
		t.Errorf("suffixes: got %v", c.Suffixes)
	}
}

func TestParseCaseNumber_PrefixValidation(t *testing.T) {
	valid := ParseCaseNumber("CPC-2015-1234")
	if valid.Prefix != "CPC" || !valid.PrefixValid {
		t.Errorf("CPC: got prefix=%q valid=%v", valid.Prefix, valid.PrefixValid)
	}
	if valid.Suffixes != nil {
		t.Errorf("expected no suffixes, got %v", valid.Suffixes)
	}

	invalid := ParseCaseNumber("ZZZ-2015-1234")
	if invalid.PrefixValid {
		t.Error("ZZZ should not be a valid prefix")
	}
	if invalid.Prefix != Invalid || invalid.InvalidPrefix != "ZZZ" {
		t.Errorf("got prefix=%q invalid_prefix=%q", invalid.Prefix, invalid.InvalidPrefix)
	}
	if invalid.RawPrefix() != "ZZZ" {
		t.Errorf("RawPrefix: got %q", invalid.RawPrefix())
	}
	if invalid.Year == nil || *invalid.Year != 2015 {
		t.Error("invalid prefix must not discard the rest of the match")
	}
}

func TestParseCaseNumber_MissingYear(t *testing.T) {
	c := ParseCaseNumber("CPC-1234-CU")

	if c.Strategy != StrategyMissingYear {
		t.Fatalf("strategy: got %q", c.Strategy)
	}
	if c.Prefix != "CPC" {
		t.Errorf("prefix: got %q", c.Prefix)
	}
	if c.Year != nil {
		t.Errorf("year: got %d, want nil", *c.Year)
	}
	if c.SequenceID == nil || *c.SequenceID != 1234 {
		t.Errorf("sequence: got %v", c.SequenceID)
	}
	if !reflect.DeepEqual(c.Suffixes, []string{"CU"}) {
		t.Errorf("suffixes: got %v", c.Suffixes)
	}
}

func TestParseCaseNumber_YearPlaceholder(t *testing.T) {
	c := ParseCaseNumber("ZA-XXXX-17-ZV")
	if c.Strategy != StrategyGeneral {
		t.Fatalf("strategy: got %q", c.Strategy)
	}
	if c.Year != nil || c.YearPlaceholder != "XXXX" {
		t.Errorf("year=%v placeholder=%q", c.Year, c.YearPlaceholder)
	}
	if c.String() != "ZA-XXXX-17-ZV" {
		t.Errorf("String: got %q", c.String())
	}
}

func TestParseCaseNumber_SuffixOrder(t *testing.T) {
	c := ParseCaseNumber("CPC-2015-1234-CU-SPR-ZV")
	want := []string{"CU", "SPR", "ZV"}
	if !reflect.DeepEqual(c.Suffixes, want) {
		t.Errorf("suffixes: got %v, want %v", c.Suffixes, want)
	}

	dup := ParseCaseNumber("DIR-2019-55-CU-CU-BOGUS1")
	if !reflect.DeepEqual(dup.Suffixes, []string{"CU", "CU", "BOGUS1"}) {
		t.Errorf("duplicates and unknown suffixes must be kept as-is: %v", dup.Suffixes)
	}
}

func TestParseCaseNumber_SuffixInPrefixPosition(t *testing.T) {
	c := ParseCaseNumber("EIR-2016-77")
	if c.PrefixValid || c.InvalidPrefix != "EIR" {
		t.Errorf("parser must not reinterpret suffix codes in prefix position: %+v", c)
	}
	if c.HasSuffix("EIR") {
		t.Error("EIR must not be moved into the suffix list")
	}
}

func TestParseCaseNumber_Totality(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"\t\n",
		"CPC",
		"CPC-",
		"-2015-1234",
		"cpc-2015-1234",
		"CPC-2015-1234-",
		"CPC--1234",
		"计划-2015-1234",
		"CPC-2015-1234-ÉIR",
		"\x00\xff",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			c := ParseCaseNumber(in)
			if c.Parsed() {
				t.Errorf("expected no match, got %+v", c)
			}
			if c.Prefix != "" || c.Year != nil || c.SequenceID != nil || c.Suffixes != nil {
				t.Errorf("expected default fields, got %+v", c)
			}
			if c.String() != "" {
				t.Errorf("String of unparsed record: %q", c.String())
			}
		})
	}
}

func TestParseCaseNumber_SequenceOverflow(t *testing.T) {
	in := "CPC-2015-99999999999999999999999-CU"
	c := ParseCaseNumber(in)
	if c.Strategy != StrategyGeneral {
		t.Fatalf("strategy: got %q", c.Strategy)
	}
	if c.Year == nil || *c.Year != 2015 {
		t.Errorf("year: got %v", c.Year)
	}
	if c.SequenceID != nil {
		t.Errorf("sequence: got %d, want nil", *c.SequenceID)
	}
	if !reflect.DeepEqual(c.Suffixes, []string{"CU"}) {
		t.Errorf("suffixes: got %v", c.Suffixes)
	}
	if c.String() != in {
		t.Errorf("String: got %q, want %q", c.String(), in)
	}
	if again := ParseCaseNumber(c.String()); !reflect.DeepEqual(c, again) {
		t.Errorf("re-parse differs:\n first  %+v\n second %+v", c, again)
	}
}

func TestCaseIdentifier_Idempotent(t *testing.T) {
	inputs := []string{
		"CPC-2015-1234-CU-SPR",
		"ZZZ-2015-1234",
		"ZA-2010-0042-ZV-ZAA",
		"VTT-1999-7",
		"CPC-1234-CU",
		"APCC-XX12-9",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			first := ParseCaseNumber(in)
			if !first.Parsed() {
				t.Fatalf("expected a match for %q", in)
			}
			second := ParseCaseNumber(first.String())
			if !reflect.DeepEqual(first, second) {
				t.Errorf("re-parse of %q differs:\n first  %+v\n second %+v", first.String(), first, second)
			}
		})
	}
}

func TestParser_CustomRegistry(t *testing.T) {
	reg, err := registry.Default().Extend(registry.Extension{Prefixes: []string{"HHA"}})
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	p := NewParser(reg)

	c := p.Parse("HHA-2023-10")
	if !c.PrefixValid || c.Prefix != "HHA" {
		t.Errorf("extended prefix not recognized: %+v", c)
	}
	if ParseCaseNumber("HHA-2023-10").PrefixValid {
		t.Error("default parser must not see extension codes")
	}
}
