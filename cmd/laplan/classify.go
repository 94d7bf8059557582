package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/gyeh/laplan/internal/exitcode"
	"github.com/gyeh/laplan/internal/ingest"
	"github.com/gyeh/laplan/internal/logging"
	"github.com/gyeh/laplan/internal/model"
	"github.com/gyeh/laplan/internal/parquetwrite"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Parse a Parquet file and write the indicator table to Parquet (no database)",
	RunE:  runClassify,
}

func init() {
	addInputFlags(classifyCmd)
	addFilterFlags(classifyCmd)
	classifyCmd.Flags().StringVar(&cfg.OutPath, "out", "", "Output Parquet path (required)")
	_ = classifyCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cfg.ValidateWithOutput(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	kind, _ := cfg.TableKind()

	if _, err := ingest.Inspect(kind, cfg.FilePath); err != nil {
		log.Error().Err(err).Msg("input validation failed")
		os.Exit(exitcode.ValidationError)
	}

	cls, err := newClassifier(log)
	if err != nil {
		log.Error().Err(err).Msg("classifier setup failed")
		os.Exit(exitcode.ValidationError)
	}

	var (
		res     *ingest.PrepareResult
		written int64
	)
	switch kind {
	case model.KindPCTS:
		filter, err := cfg.BuildFilter(cls.Registry())
		if err != nil {
			log.Error().Err(err).Msg("invalid filter")
			os.Exit(exitcode.UsageError)
		}
		tbl, prep, err := ingest.PrepareCases(ctx, log, cls, cfg.FilePath, ingest.PrepareOptions{
			Filter:                filter,
			RollUp:                cfg.RollUp,
			KeepChildEntitlements: cfg.KeepChildEntitlements,
		})
		if err != nil {
			log.Error().Err(err).Msg("classification failed")
			os.Exit(exitcode.ClassifyError)
		}
		res = prep
		written, err = parquetwrite.WriteCases(cfg.OutPath, tbl)
		if err != nil {
			log.Error().Err(err).Msg("write output failed")
			os.Exit(exitcode.OutputError)
		}
	case model.KindZoning:
		tbl, prep, err := ingest.PrepareZoning(ctx, log, cls, cfg.FilePath)
		if err != nil {
			log.Error().Err(err).Msg("classification failed")
			os.Exit(exitcode.ClassifyError)
		}
		res = prep
		written, err = parquetwrite.WriteZoning(cfg.OutPath, tbl)
		if err != nil {
			log.Error().Err(err).Msg("write output failed")
			os.Exit(exitcode.OutputError)
		}
	}

	fmt.Printf("Classify complete: %d rows read, %d filtered, %d written to %s, %d unparsed\n",
		res.RowsRead, res.RowsFiltered, written, cfg.OutPath, res.RowsUnparsed)

	if cfg.FailOnUnparsed && res.RowsUnparsed > 0 {
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}
