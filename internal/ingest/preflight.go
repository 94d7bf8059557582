package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/laplan/internal/model"
	"github.com/gyeh/laplan/internal/normalize"
	"github.com/gyeh/laplan/internal/parquetread"
	embedsql "github.com/gyeh/laplan/internal/sql"
)

// Source file statuses, in pipeline order.
const (
	StatusPending      = "pending"
	StatusStaging      = "staging"
	StatusStaged       = "staged"
	StatusTransforming = "transforming"
	StatusTransformed  = "transformed"
	StatusLoaded       = "loaded"
	StatusFailed       = "failed"
)

// PreflightResult holds all context resolved during the preflight phase.
type PreflightResult struct {
	// FilePath is the original path passed to Preflight, stored as-is.
	FilePath string
	Kind     model.TableKind
	// FileSHA256 is the hex-encoded SHA-256 digest of the file, computed by normalize.FileHash.
	FileSHA256 string
	FileSize   int64
	// SourceFileID is the DB primary key for this file, returned by
	// RegisterSourceFile (inserted or looked up via kind + sha256).
	SourceFileID int64
	// IngestBatchID is a freshly generated UUIDv4 that uniquely identifies this
	// ingest run, used to tag staged rows for later transform/cleanup.
	IngestBatchID uuid.UUID
	// NumRows is the total row count reported by the Parquet file metadata.
	NumRows int64
	// AlreadyLoaded is true when the file's sha256 is already loaded for this
	// kind and force mode is off.
	AlreadyLoaded bool
}

// FileInfo is what Inspect learns about an input file without touching the
// database.
type FileInfo struct {
	SHA256  string
	Size    int64
	NumRows int64
}

// Inspect hashes the file and checks that its Parquet schema carries the
// columns kind needs.
func Inspect(kind model.TableKind, filePath string) (*FileInfo, error) {
	sha, err := normalize.FileHash(filePath)
	if err != nil {
		return nil, err
	}
	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}

	var numRows int64
	switch kind {
	case model.KindPCTS:
		numRows, err = validateFile[model.CaseRow](filePath, kind.Name)
	case model.KindZoning:
		numRows, err = validateFile[model.ZoningRow](filePath, kind.Name)
	default:
		err = fmt.Errorf("unsupported kind %q", kind.Name)
	}
	if err != nil {
		return nil, err
	}
	return &FileInfo{SHA256: sha, Size: stat.Size(), NumRows: numRows}, nil
}

func validateFile[T any](path, kind string) (int64, error) {
	reader, err := parquetread.Open[T](path)
	if err != nil {
		return 0, err
	}
	defer reader.Close()
	if err := parquetread.ValidateSchema(reader.Schema(), kind); err != nil {
		return 0, err
	}
	return reader.NumRows(), nil
}

// Preflight hashes and validates the file, then registers it as a source
// file.
func Preflight(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, kind model.TableKind, filePath string, force bool) (*PreflightResult, error) {
	start := time.Now()

	info, err := Inspect(kind, filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight inspect: %w", err)
	}

	log.Info().
		Str("file", filepath.Base(filePath)).
		Str("kind", kind.Name).
		Str("sha256", info.SHA256).
		Int64("rows", info.NumRows).
		Dur("duration", time.Since(start)).
		Msg("preflight complete")

	sourceFileID, alreadyLoaded, err := registerSourceFile(ctx, pool, kind, filePath, info, force)
	if err != nil {
		return nil, fmt.Errorf("preflight register file: %w", err)
	}

	return &PreflightResult{
		FilePath:      filePath,
		Kind:          kind,
		FileSHA256:    info.SHA256,
		FileSize:      info.Size,
		SourceFileID:  sourceFileID,
		IngestBatchID: uuid.New(),
		NumRows:       info.NumRows,
		AlreadyLoaded: alreadyLoaded,
	}, nil
}

func registerSourceFile(ctx context.Context, pool *pgxpool.Pool, kind model.TableKind, filePath string, info *FileInfo, force bool) (int64, bool, error) {
	var id int64
	err := pool.QueryRow(ctx, embedsql.RegisterSourceFile,
		kind.Name, filepath.Base(filePath), info.SHA256, info.Size,
	).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, fmt.Errorf("register source file: %w", err)
	}

	// Already exists (ON CONFLICT DO NOTHING returned no rows).
	var status string
	if err := pool.QueryRow(ctx, embedsql.LookupSourceFile, kind.Name, info.SHA256).Scan(&id, &status); err != nil {
		return 0, false, fmt.Errorf("lookup existing source file: %w", err)
	}
	if !force && status == StatusLoaded {
		return id, true, nil
	}

	// Reset status for re-import
	if err := UpdateStatus(ctx, pool, id, StatusPending); err != nil {
		return 0, false, fmt.Errorf("reset source file status: %w", err)
	}
	return id, false, nil
}

// UpdateStatus updates the source file status.
func UpdateStatus(ctx context.Context, pool *pgxpool.Pool, sourceFileID int64, status string) error {
	_, err := pool.Exec(ctx, embedsql.UpdateSourceStatus, sourceFileID, status)
	return err
}
