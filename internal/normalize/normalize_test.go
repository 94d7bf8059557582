package normalize

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gyeh/laplan/internal/model"
	"github.com/gyeh/laplan/internal/pcts"
	"github.com/gyeh/laplan/internal/zoning"
)

func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }

func TestCleanIdentifier(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"CPC-2015-1234", "CPC-2015-1234"},
		{" cpc-2015 - 1234-cu ", "CPC-2015-1234-CU"},
		{"r1  -  1", "R1-1"},
		{"(t)(q)c2\t-1vl", "(T)(Q)C2-1VL"},
		{"R 1 1", "R 1 1"},
	}
	for _, tt := range tests {
		if got := CleanIdentifier(tt.in); got != tt.want {
			t.Errorf("CleanIdentifier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestColumnName(t *testing.T) {
	tests := []struct {
		kind, code, want string
	}{
		{"suffix", "CU", "suffix_cu"},
		{"prefix", "CPC", "prefix_cpc"},
		{"overlay", "C1.5", "overlay_c1_5"},
		{"Overlay", "-POD-", "overlay_pod"},
	}
	for _, tt := range tests {
		if got := ColumnName(tt.kind, tt.code); got != tt.want {
			t.Errorf("ColumnName(%q, %q) = %q, want %q", tt.kind, tt.code, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2015-03-01", "03/01/2015", "3/1/2015", "2015/03/01", " 2015-03-01T00:00:00Z "} {
		got := ParseDate(in)
		if got == nil || !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}
	for _, in := range []string{"", "not a date", "2015-13-45"} {
		if got := ParseDate(in); got != nil {
			t.Errorf("ParseDate(%q) = %v, want nil", in, got)
		}
	}
	if ParseDatePtr(nil) != nil {
		t.Error("ParseDatePtr(nil) should be nil")
	}
}

func TestToCaseStagingRow(t *testing.T) {
	batch := uuid.New()
	row := &model.CaseRow{
		CaseID:       42,
		CaseNumber:   "CPC-2015-1234-CU-SPR",
		ParentCaseID: int64Ptr(40),
		FileDate:     strPtr("2015-03-01"),
		AIN:          strPtr(" 5555012345 "),
	}
	rec := pcts.ParseCaseNumber(row.CaseNumber)

	s := ToCaseStagingRow(row, rec, batch, 7, 3)
	if s.IngestBatchID != batch || s.SourceFileID != 7 || s.SourceRowNumber != 3 {
		t.Errorf("identity columns: %+v", s)
	}
	if s.Prefix == nil || *s.Prefix != "CPC" || s.InvalidPrefix != nil {
		t.Errorf("prefix: %v / %v", s.Prefix, s.InvalidPrefix)
	}
	if s.Year == nil || *s.Year != 2015 || s.SequenceID == nil || *s.SequenceID != 1234 {
		t.Errorf("year/sequence: %v / %v", s.Year, s.SequenceID)
	}
	if len(s.Suffixes) != 2 || s.Suffixes[0] != "CU" || s.Suffixes[1] != "SPR" {
		t.Errorf("suffixes: %v", s.Suffixes)
	}
	if s.Strategy != "general" {
		t.Errorf("strategy: %q", s.Strategy)
	}
	if s.FileDate == nil || s.FileDate.Year() != 2015 {
		t.Errorf("file date: %v", s.FileDate)
	}
	if s.AIN == nil || *s.AIN != "5555012345" {
		t.Errorf("ain: %v", s.AIN)
	}
	if len(s.SourceRowHash) != 32 {
		t.Errorf("row hash length: %d", len(s.SourceRowHash))
	}
	if len(s.CopyValues()) != len(model.CaseStagingColumns()) {
		t.Errorf("CopyValues has %d values for %d columns", len(s.CopyValues()), len(model.CaseStagingColumns()))
	}

	other := ToCaseStagingRow(row, rec, batch, 7, 4)
	if bytes.Equal(s.SourceRowHash, other.SourceRowHash) {
		t.Error("row number must feed the row hash")
	}
}

func TestToCaseStagingRow_Unparsed(t *testing.T) {
	row := &model.CaseRow{CaseID: 1, CaseNumber: "not a case"}
	s := ToCaseStagingRow(row, pcts.ParseCaseNumber(row.CaseNumber), uuid.New(), 1, 1)
	if s.Strategy != "none" {
		t.Errorf("strategy: %q", s.Strategy)
	}
	if s.Prefix != nil || s.Year != nil || s.SequenceID != nil || s.Suffixes != nil {
		t.Errorf("unparsed row should have null parsed columns: %+v", s)
	}
	if s.FileDate != nil || s.AIN != nil {
		t.Errorf("missing source values should stay null: %+v", s)
	}
}

func TestToCaseStagingRow_InvalidPrefix(t *testing.T) {
	row := &model.CaseRow{CaseID: 1, CaseNumber: "XYZ-2015-1"}
	s := ToCaseStagingRow(row, pcts.ParseCaseNumber(row.CaseNumber), uuid.New(), 1, 1)
	if s.Prefix == nil || *s.Prefix != pcts.Invalid {
		t.Errorf("prefix: %v", s.Prefix)
	}
	if s.InvalidPrefix == nil || *s.InvalidPrefix != "XYZ" {
		t.Errorf("invalid prefix: %v", s.InvalidPrefix)
	}
}

func TestToZoningStagingRow(t *testing.T) {
	rank := int32(34)
	row := &model.ZoningRow{AIN: strPtr("123"), Zoning: "(Q)C2-1VL-CDO-XYZ"}
	s := ToZoningStagingRow(row, zoning.ParseZoningString(row.Zoning), &rank, uuid.New(), 2, 9)

	if !s.Qualified || s.Tentative {
		t.Errorf("qualifiers: q=%v t=%v", s.Qualified, s.Tentative)
	}
	if s.ZoneClass == nil || *s.ZoneClass != "C2" || s.ZoneRank == nil || *s.ZoneRank != 34 {
		t.Errorf("zone: %v rank %v", s.ZoneClass, s.ZoneRank)
	}
	if s.HeightDistrict == nil || *s.HeightDistrict != "1VL" {
		t.Errorf("height: %v", s.HeightDistrict)
	}
	if len(s.Overlays) != 2 || s.Overlays[1] != zoning.Invalid || len(s.InvalidOverlays) != 1 {
		t.Errorf("overlays: %v / %v", s.Overlays, s.InvalidOverlays)
	}
	if s.Strategy != "full" {
		t.Errorf("strategy: %q", s.Strategy)
	}
	if len(s.CopyValues()) != len(model.ZoningStagingColumns()) {
		t.Errorf("CopyValues has %d values for %d columns", len(s.CopyValues()), len(model.ZoningStagingColumns()))
	}

	empty := ToZoningStagingRow(&model.ZoningRow{}, zoning.ZoningRecord{}, nil, uuid.New(), 2, 10)
	if empty.Strategy != "none" || empty.ZoneClass != nil {
		t.Errorf("empty record: %+v", empty)
	}
}
