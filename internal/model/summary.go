package model

import "time"

// IngestSummary captures metrics from a single file ingest run.
type IngestSummary struct {
	FilePath            string
	Kind                string
	FileSHA256          string
	SourceFileID        int64
	IngestBatchID       string
	RowsRead            int64
	RowsFiltered        int64
	RowsStaged          int64
	RowsUnparsed        int64
	RowsInsertedServing int64
	CodesInserted       int64
	StrategyCounts      map[string]int64
	DurationRead        time.Duration
	DurationClassify    time.Duration
	DurationCopy        time.Duration
	DurationTransform   time.Duration
	DurationFinalize    time.Duration
	DurationTotal       time.Duration
}
