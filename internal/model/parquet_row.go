package model

// CaseRow mirrors the Parquet schema of a PCTS extract.
type CaseRow struct {
	CaseID       int64   `parquet:"case_id"`
	CaseNumber   string  `parquet:"case_number"`
	ParentCaseID *int64  `parquet:"parent_case_id,optional"`
	FileDate     *string `parquet:"file_date,optional"`
	AIN          *string `parquet:"ain,optional"`
	Address      *string `parquet:"address,optional"`
}

// ZoningRow mirrors the Parquet schema of a parcel zoning table.
type ZoningRow struct {
	AIN    *string `parquet:"ain,optional"`
	Zoning string  `parquet:"zoning"`
}

// CodebookRow is one manual correction for a zoning string the parser
// could not handle. Overlays is hyphen-separated.
type CodebookRow struct {
	Zoning         string  `parquet:"zoning"`
	Q              bool    `parquet:"q"`
	T              bool    `parquet:"t"`
	D              bool    `parquet:"d"`
	ZoneClass      string  `parquet:"zone_class"`
	SpecificPlan   *string `parquet:"specific_plan,optional"`
	HeightDistrict *string `parquet:"height_district,optional"`
	Overlays       *string `parquet:"overlays,optional"`
}
