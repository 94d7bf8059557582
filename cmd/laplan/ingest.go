package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/gyeh/laplan/internal/db"
	"github.com/gyeh/laplan/internal/exitcode"
	"github.com/gyeh/laplan/internal/ingest"
	"github.com/gyeh/laplan/internal/logging"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Parse a Parquet file and load it into the database",
	RunE:  runIngest,
}

func init() {
	addInputFlags(ingestCmd)
	addFilterFlags(ingestCmd)
	f := ingestCmd.Flags()
	f.BoolVar(&cfg.Force, "force", false, "Re-import even if file SHA already exists")
	f.BoolVar(&cfg.KeepStaging, "keep-staging", false, "Keep staging rows after transform")
	f.Int32Var(&cfg.MaxConns, "max-conns", 4, "Maximum database connections")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	cls, err := newClassifier(log)
	if err != nil {
		log.Error().Err(err).Msg("classifier setup failed")
		os.Exit(exitcode.ValidationError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN, cfg.MaxConns)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	summary, err := ingest.Run(ctx, pool, log, &cfg, cls)
	if err != nil {
		var pe *ingest.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("ingest failed")
			pool.Close()
			switch pe.Phase {
			case "preflight":
				os.Exit(exitcode.ValidationError)
			case "stage":
				os.Exit(exitcode.CopyError)
			default:
				os.Exit(exitcode.TransformError)
			}
		}
		log.Error().Err(err).Msg("ingest failed")
		os.Exit(exitcode.TransformError)
	}

	fmt.Printf("Ingest complete: %d rows read, %d filtered, %d staged, %d rows in serving table, %d unparsed (%.1fs)\n",
		summary.RowsRead, summary.RowsFiltered, summary.RowsStaged,
		summary.RowsInsertedServing, summary.RowsUnparsed, summary.DurationTotal.Seconds())

	if cfg.FailOnUnparsed && summary.RowsUnparsed > 0 {
		pool.Close()
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}
