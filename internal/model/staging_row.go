package model

import (
	"time"

	"github.com/google/uuid"
)

// CaseStagingRow is the parsed, DB-ready representation of one PCTS case row.
type CaseStagingRow struct {
	IngestBatchID uuid.UUID
	SourceFileID  int64

	SourceRowNumber int64
	SourceRowHash   []byte

	CaseID       int64
	ParentCaseID *int64
	CaseNumber   string
	FileDate     *time.Time
	AIN          *string

	Prefix          *string
	InvalidPrefix   *string
	Year            *int32
	YearPlaceholder *string
	SequenceID      *int64
	Suffixes        []string
	Strategy        string
}

// CaseStagingColumns returns the ordered column names for COPY into ingest.stage_pcts_cases.
func CaseStagingColumns() []string {
	return []string{
		"ingest_batch_id",
		"source_file_id",
		"source_row_number",
		"source_row_hash",
		"case_id",
		"parent_case_id",
		"case_number",
		"file_date",
		"ain",
		"prefix",
		"invalid_prefix",
		"year",
		"year_placeholder",
		"sequence_id",
		"suffixes",
		"strategy",
	}
}

// CopyValues returns the row values in the same order as CaseStagingColumns(),
// suitable for pgx CopyFromSource.
func (r *CaseStagingRow) CopyValues() []any {
	return []any{
		r.IngestBatchID,
		r.SourceFileID,
		r.SourceRowNumber,
		r.SourceRowHash,
		r.CaseID,
		r.ParentCaseID,
		r.CaseNumber,
		r.FileDate,
		r.AIN,
		r.Prefix,
		r.InvalidPrefix,
		r.Year,
		r.YearPlaceholder,
		r.SequenceID,
		r.Suffixes,
		r.Strategy,
	}
}

// CaseCodeRow is one true indicator cell of a classified case table, i.e.
// one entitlement held by a case after ambiguous-code reconciliation.
type CaseCodeRow struct {
	IngestBatchID uuid.UUID
	SourceFileID  int64
	CaseID        int64
	CodeKind      string
	Code          string
}

// CaseCodeColumns returns the ordered column names for COPY into ingest.stage_case_codes.
func CaseCodeColumns() []string {
	return []string{
		"ingest_batch_id",
		"source_file_id",
		"case_id",
		"code_kind",
		"code",
	}
}

// CopyValues returns the row values in the same order as CaseCodeColumns().
func (r *CaseCodeRow) CopyValues() []any {
	return []any{
		r.IngestBatchID,
		r.SourceFileID,
		r.CaseID,
		r.CodeKind,
		r.Code,
	}
}

// ZoningStagingRow is the parsed, DB-ready representation of one zoning string.
type ZoningStagingRow struct {
	IngestBatchID uuid.UUID
	SourceFileID  int64

	SourceRowNumber int64
	SourceRowHash   []byte

	AIN    *string
	Zoning string

	Qualified             bool
	Tentative             bool
	ZoneClass             *string
	InvalidZoneClass      *string
	ZoneRank              *int32
	HeightDistrict        *string
	InvalidHeightDistrict *string
	HeightLimit           bool
	Overlays              []string
	InvalidOverlays       []string
	SpecificPlan          *string
	InvalidSpecificPlan   *string
	Unrecognized          []string
	Strategy              string
}

// ZoningStagingColumns returns the ordered column names for COPY into ingest.stage_zoning.
func ZoningStagingColumns() []string {
	return []string{
		"ingest_batch_id",
		"source_file_id",
		"source_row_number",
		"source_row_hash",
		"ain",
		"zoning",
		"qualified",
		"tentative",
		"zone_class",
		"invalid_zone_class",
		"zone_rank",
		"height_district",
		"invalid_height_district",
		"height_limit",
		"overlays",
		"invalid_overlays",
		"specific_plan",
		"invalid_specific_plan",
		"unrecognized",
		"strategy",
	}
}

// CopyValues returns the row values in the same order as ZoningStagingColumns().
func (r *ZoningStagingRow) CopyValues() []any {
	return []any{
		r.IngestBatchID,
		r.SourceFileID,
		r.SourceRowNumber,
		r.SourceRowHash,
		r.AIN,
		r.Zoning,
		r.Qualified,
		r.Tentative,
		r.ZoneClass,
		r.InvalidZoneClass,
		r.ZoneRank,
		r.HeightDistrict,
		r.InvalidHeightDistrict,
		r.HeightLimit,
		r.Overlays,
		r.InvalidOverlays,
		r.SpecificPlan,
		r.InvalidSpecificPlan,
		r.Unrecognized,
		r.Strategy,
	}
}
