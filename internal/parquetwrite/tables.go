package parquetwrite

import "github.com/gyeh/laplan/internal/classify"

// WriteCases writes a classified case table: source columns when the table
// has source rows, the parsed fields, then one boolean column per indicator.
func WriteCases(path string, t *classify.CaseTable) (int64, error) {
	recs := t.Records
	var cols []column

	if t.Rows != nil {
		rows := t.Rows
		cols = append(cols,
			int64Col("case_id", func(i int) int64 { return rows[i].CaseID }),
			optInt64Col("parent_case_id", func(i int) (int64, bool) {
				if p := rows[i].ParentCaseID; p != nil {
					return *p, true
				}
				return 0, false
			}),
			optStringCol("file_date", func(i int) string { return deref(rows[i].FileDate) }),
			optStringCol("ain", func(i int) string { return deref(rows[i].AIN) }),
		)
	}

	cols = append(cols,
		stringCol("case_number", func(i int) string { return t.Raws[i] }),
		optStringCol("prefix", func(i int) string { return recs[i].Prefix }),
		boolCol("prefix_valid", func(i int) bool { return recs[i].PrefixValid }),
		optStringCol("invalid_prefix", func(i int) string { return recs[i].InvalidPrefix }),
		optInt64Col("year", func(i int) (int64, bool) { return optInt(recs[i].Year) }),
		optStringCol("year_placeholder", func(i int) string { return recs[i].YearPlaceholder }),
		optInt64Col("sequence_id", func(i int) (int64, bool) { return optInt(recs[i].SequenceID) }),
		optStringCol("suffixes", func(i int) string { return joined(recs[i].Suffixes) }),
		stringCol("canonical", func(i int) string { return recs[i].String() }),
		stringCol("strategy", func(i int) string { return string(recs[i].Strategy) }),
	)
	cols = append(cols, indicatorCols(t.Columns)...)

	return writeTable(path, "pcts_cases", t.Len(), cols)
}

// WriteZoning writes a classified zoning table.
func WriteZoning(path string, t *classify.ZoningTable) (int64, error) {
	recs := t.Records
	var cols []column

	if t.Rows != nil {
		rows := t.Rows
		cols = append(cols, optStringCol("ain", func(i int) string { return deref(rows[i].AIN) }))
	}

	cols = append(cols,
		stringCol("zoning", func(i int) string { return t.Raws[i] }),
		boolCol("qualified", func(i int) bool { return recs[i].Qualified }),
		boolCol("tentative", func(i int) bool { return recs[i].Tentative }),
		optStringCol("zone_class", func(i int) string { return recs[i].ZoneClass }),
		optStringCol("invalid_zone_class", func(i int) string { return recs[i].InvalidZoneClass }),
		optInt64Col("zone_rank", func(i int) (int64, bool) {
			return int64(t.Ranks[i]), t.Ranks[i] != classify.NoRank
		}),
		optStringCol("height_district", func(i int) string { return recs[i].HeightDistrict }),
		optStringCol("invalid_height_district", func(i int) string { return recs[i].InvalidHeightDistrict }),
		boolCol("height_limit", func(i int) bool { return recs[i].HeightLimit }),
		optStringCol("overlays", func(i int) string { return joined(recs[i].Overlays) }),
		optStringCol("invalid_overlays", func(i int) string { return joined(recs[i].InvalidOverlays) }),
		optStringCol("specific_plan", func(i int) string { return recs[i].SpecificPlan }),
		optStringCol("invalid_specific_plan", func(i int) string { return recs[i].InvalidSpecificPlan }),
		optStringCol("unrecognized", func(i int) string { return joined(recs[i].Unrecognized) }),
		stringCol("strategy", func(i int) string { return string(recs[i].Strategy) }),
	)
	cols = append(cols, indicatorCols(t.Columns)...)

	return writeTable(path, "zoning_strings", t.Len(), cols)
}

func indicatorCols(src []classify.Column) []column {
	cols := make([]column, len(src))
	for c := range src {
		vals := src[c].Values
		cols[c] = boolCol(src[c].Name(), func(i int) bool { return vals[i] })
	}
	return cols
}

func optInt(v *int) (int64, bool) {
	if v == nil {
		return 0, false
	}
	return int64(*v), true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
