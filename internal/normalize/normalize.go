package normalize

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/gyeh/laplan/internal/model"
	"github.com/gyeh/laplan/internal/pcts"
	"github.com/gyeh/laplan/internal/zoning"
)

// ToCaseStagingRow combines a PCTS source row with its parsed case number
// into a CaseStagingRow. Unparsed case numbers keep every parsed column
// null and carry strategy "none".
func ToCaseStagingRow(row *model.CaseRow, rec pcts.CaseIdentifier, batchID uuid.UUID, sourceFileID, rowNum int64) *model.CaseStagingRow {
	s := &model.CaseStagingRow{
		IngestBatchID:   batchID,
		SourceFileID:    sourceFileID,
		SourceRowNumber: rowNum,

		CaseID:       row.CaseID,
		ParentCaseID: row.ParentCaseID,
		CaseNumber:   row.CaseNumber,
		FileDate:     ParseDatePtr(row.FileDate),
		AIN:          trimPtr(row.AIN),

		Strategy: string(pcts.StrategyNone),
	}

	if rec.Parsed() {
		s.Prefix = optStr(rec.Prefix)
		s.InvalidPrefix = optStr(rec.InvalidPrefix)
		s.YearPlaceholder = optStr(rec.YearPlaceholder)
		if rec.Year != nil {
			y := int32(*rec.Year)
			s.Year = &y
		}
		if rec.SequenceID != nil {
			id := int64(*rec.SequenceID)
			s.SequenceID = &id
		}
		s.Suffixes = rec.Suffixes
		s.Strategy = string(rec.Strategy)
	}

	s.SourceRowHash = RowHashFromValues(rowNum,
		strconv.FormatInt(row.CaseID, 10),
		row.CaseNumber,
		formatID(row.ParentCaseID),
		derefStr(row.FileDate),
		derefStr(row.AIN),
	)
	return s
}

// ToZoningStagingRow combines a zoning source row with its parsed record.
// rank is the zone class rank, nil when the class has none.
func ToZoningStagingRow(row *model.ZoningRow, rec zoning.ZoningRecord, rank *int32, batchID uuid.UUID, sourceFileID, rowNum int64) *model.ZoningStagingRow {
	s := &model.ZoningStagingRow{
		IngestBatchID:   batchID,
		SourceFileID:    sourceFileID,
		SourceRowNumber: rowNum,

		AIN:    trimPtr(row.AIN),
		Zoning: row.Zoning,

		Qualified:             rec.Qualified,
		Tentative:             rec.Tentative,
		ZoneClass:             optStr(rec.ZoneClass),
		InvalidZoneClass:      optStr(rec.InvalidZoneClass),
		ZoneRank:              rank,
		HeightDistrict:        optStr(rec.HeightDistrict),
		InvalidHeightDistrict: optStr(rec.InvalidHeightDistrict),
		HeightLimit:           rec.HeightLimit,
		Overlays:              rec.Overlays,
		InvalidOverlays:       rec.InvalidOverlays,
		SpecificPlan:          optStr(rec.SpecificPlan),
		InvalidSpecificPlan:   optStr(rec.InvalidSpecificPlan),
		Unrecognized:          rec.Unrecognized,
		Strategy:              string(rec.Strategy),
	}
	if s.Strategy == "" {
		s.Strategy = string(zoning.StrategyNone)
	}

	s.SourceRowHash = RowHashFromValues(rowNum, derefStr(row.AIN), row.Zoning)
	return s
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return optStr(strings.TrimSpace(*s))
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}
