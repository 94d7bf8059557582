package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/laplan/internal/config"
	"github.com/gyeh/laplan/internal/exitcode"
	"github.com/gyeh/laplan/internal/model"
)

var (
	cfg        config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "laplan",
	Short: "LA planning case number and zoning string parser",
	Long: "Parses LA City Planning (PCTS) case numbers and parcel zoning strings, " +
		"classifies them into indicator tables and bulk-loads them into Postgres via the COPY protocol.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if configPath == "" {
			return
		}
		if err := cfg.LoadFromFile(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(exitcode.UsageError)
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("LAPLAN_DB_URL"), "Postgres connection string (or set LAPLAN_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn or error")
	pf.StringVar(&configPath, "config", "", "YAML config with registry extensions, filters and classifier options")
	pf.IntVar(&cfg.Workers, "workers", 0, "Parser goroutines (0 = GOMAXPROCS)")
	pf.BoolVar(&cfg.Clean, "clean", false, "Uppercase and collapse whitespace before parsing")
}

// addInputFlags registers the flags every file-reading command needs.
func addInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to Parquet file (required)")
	f.StringVar(&cfg.Kind, "kind", model.KindPCTS.Name, "Input table kind: pcts or zoning")
	f.StringVar(&cfg.CodebookPath, "codebook", "", "Parquet codebook of manual zoning corrections")
	f.BoolVar(&cfg.FailOnUnparsed, "fail-on-unparsed", false, "Exit with a partial-success code when any row matches no grammar")
	_ = cmd.MarkFlagRequired("file")
}

// addFilterFlags registers the PCTS subset flags.
func addFilterFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&cfg.Filter.StartDate, "start-date", "", "Keep cases filed on or after this date")
	f.StringVar(&cfg.Filter.EndDate, "end-date", "", "Keep cases filed on or before this date")
	f.StringSliceVar(&cfg.Filter.Prefixes, "prefix", nil, "Keep only cases with these prefixes")
	f.StringSliceVar(&cfg.Filter.Suffixes, "suffix", nil, "Drop cases holding any known suffix outside this list")
	f.BoolVar(&cfg.Filter.Distinct, "distinct", false, "Drop repeated source rows")
	f.BoolVar(&cfg.RollUp, "roll-up", false, "Drop child cases")
	f.BoolVar(&cfg.KeepChildEntitlements, "keep-child-entitlements", false, "With --roll-up, merge child entitlements into the parent")
}
