package ingest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"

	"github.com/gyeh/laplan/internal/classify"
	"github.com/gyeh/laplan/internal/model"
)

func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }

func fixtureCases() []model.CaseRow {
	return []model.CaseRow{
		{CaseID: 1, CaseNumber: "CPC-2015-1234-CU-SPR", FileDate: strPtr("2015-03-01"), AIN: strPtr("5555001001")},
		{CaseID: 2, CaseNumber: "ENV-2015-1235-EIR", ParentCaseID: int64Ptr(1), FileDate: strPtr("2015-03-02")},
		{CaseID: 3, CaseNumber: "EIR-2016-77", FileDate: strPtr("2016-07-01")},
		{CaseID: 4, CaseNumber: "ZA-2017-5-ZV", FileDate: strPtr("2017-01-15")},
		{CaseID: 5, CaseNumber: "not a case", FileDate: strPtr("2018-01-01")},
		{CaseID: 6, CaseNumber: "DIR-2018-9-CU", ParentCaseID: int64Ptr(6), FileDate: strPtr("2018-05-05")},
	}
}

func writeParquet[T any](t *testing.T, name string, rows []T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := parquet.WriteFile(path, rows); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestPrepareCases(t *testing.T) {
	path := writeParquet(t, "cases.parquet", fixtureCases())
	cls := classify.New(nil, classify.Options{}, zerolog.Nop())

	tbl, res, err := PrepareCases(context.Background(), zerolog.Nop(), cls, path, PrepareOptions{})
	if err != nil {
		t.Fatalf("PrepareCases: %v", err)
	}
	if res.RowsRead != 6 || res.RowsFiltered != 0 || res.RowsUnparsed != 1 {
		t.Errorf("metrics: %+v", res)
	}
	if res.StrategyCounts["general"] != 5 || res.StrategyCounts["none"] != 1 {
		t.Errorf("strategy counts: %v", res.StrategyCounts)
	}
	if tbl.Len() != 6 {
		t.Errorf("rows: got %d", tbl.Len())
	}
}

func TestPrepareCases_FilterAndRollUp(t *testing.T) {
	path := writeParquet(t, "cases.parquet", fixtureCases())
	cls := classify.New(nil, classify.Options{}, zerolog.Nop())
	start := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2016, 12, 31, 0, 0, 0, 0, time.UTC)

	tbl, res, err := PrepareCases(context.Background(), zerolog.Nop(), cls, path, PrepareOptions{
		Filter:                classify.Filter{StartDate: &start, EndDate: &end},
		RollUp:                true,
		KeepChildEntitlements: true,
	})
	if err != nil {
		t.Fatalf("PrepareCases: %v", err)
	}

	// Cases 1, 2 and 3 fall in the window; case 2 rolls up into case 1.
	if tbl.Len() != 2 || tbl.Rows[0].CaseID != 1 || tbl.Rows[1].CaseID != 3 {
		t.Fatalf("rows: %+v", tbl.Rows)
	}
	if res.RowsFiltered != 4 {
		t.Errorf("rows filtered: got %d, want 4", res.RowsFiltered)
	}
	if tbl.Source[1] != 2 {
		t.Errorf("source position of case 3: got %d, want 2", tbl.Source[1])
	}
	eir, _ := tbl.Column(classify.KindSuffix, "EIR")
	if !eir.Values[0] || !eir.Values[1] {
		t.Errorf("suffix_eir: %v", eir.Values)
	}
}

func TestPrepareZoning(t *testing.T) {
	path := writeParquet(t, "zoning.parquet", []model.ZoningRow{
		{AIN: strPtr("1"), Zoning: "(T)(Q)C2-1VL-CDO"},
		{AIN: strPtr("2"), Zoning: "R1-1"},
		{AIN: strPtr("3"), Zoning: "???"},
	})
	cls := classify.New(nil, classify.Options{}, zerolog.Nop())

	tbl, res, err := PrepareZoning(context.Background(), zerolog.Nop(), cls, path)
	if err != nil {
		t.Fatalf("PrepareZoning: %v", err)
	}
	if res.RowsRead != 3 || res.RowsUnparsed != 1 {
		t.Errorf("metrics: %+v", res)
	}
	if res.StrategyCounts["full"] != 2 {
		t.Errorf("strategy counts: %v", res.StrategyCounts)
	}
	if tbl.Rows[0].AIN == nil || *tbl.Rows[0].AIN != "1" {
		t.Errorf("source rows not attached: %+v", tbl.Rows[0])
	}
}

func TestInspect(t *testing.T) {
	cases := writeParquet(t, "cases.parquet", fixtureCases())
	zoningFile := writeParquet(t, "zoning.parquet", []model.ZoningRow{{Zoning: "R1-1"}})

	info, err := Inspect(model.KindPCTS, cases)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.NumRows != 6 || len(info.SHA256) != 64 || info.Size == 0 {
		t.Errorf("info: %+v", info)
	}

	if _, err := Inspect(model.KindPCTS, zoningFile); err == nil {
		t.Error("a zoning file must not pass as a PCTS extract")
	}
	if _, err := Inspect(model.KindZoning, zoningFile); err != nil {
		t.Errorf("Inspect zoning: %v", err)
	}
	if _, err := Inspect(model.KindPCTS, filepath.Join(t.TempDir(), "missing.parquet")); err == nil {
		t.Error("expected error for missing file")
	}
}
