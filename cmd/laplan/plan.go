package main

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/gyeh/laplan/internal/classify"
	"github.com/gyeh/laplan/internal/exitcode"
	"github.com/gyeh/laplan/internal/ingest"
	"github.com/gyeh/laplan/internal/logging"
	"github.com/gyeh/laplan/internal/model"
)

const (
	planSamples   = 10
	planTopTokens = 10
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run validation and parse stats (no writes)",
	RunE:  runPlan,
}

func init() {
	addInputFlags(planCmd)
	addFilterFlags(planCmd)
	rootCmd.AddCommand(planCmd)
}

type tally struct {
	key string
	n   int
}

func topN(counts map[string]int, n int) []tally {
	out := make([]tally, 0, len(counts))
	for k, v := range counts {
		out = append(out, tally{k, v})
	}
	slices.SortFunc(out, func(a, b tally) int {
		if c := cmp.Compare(b.n, a.n); c != 0 {
			return c
		}
		return cmp.Compare(a.key, b.key)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := context.Background()

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	kind, _ := cfg.TableKind()

	info, err := ingest.Inspect(kind, cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("input validation failed")
		os.Exit(exitcode.ValidationError)
	}

	cls, err := newClassifier(log)
	if err != nil {
		log.Error().Err(err).Msg("classifier setup failed")
		os.Exit(exitcode.ValidationError)
	}

	var (
		res        *ingest.PrepareResult
		samples    []string
		indicators []classify.Column
	)
	invalid := make(map[string]int)
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
		res, indicators = prep, tbl.Columns
		for i, rec := range tbl.Records {
			if !rec.Parsed() {
				if len(samples) < planSamples {
					samples = append(samples, tbl.Raws[i])
				}
				continue
			}
			if rec.InvalidPrefix != "" {
				invalid["prefix:"+rec.InvalidPrefix]++
			}
		}
	case model.KindZoning:
		tbl, prep, err := ingest.PrepareZoning(ctx, log, cls, cfg.FilePath)
		if err != nil {
			log.Error().Err(err).Msg("classification failed")
			os.Exit(exitcode.ClassifyError)
		}
		res, indicators = prep, tbl.Columns
		for i, rec := range tbl.Records {
			if !rec.Parsed() {
				if len(samples) < planSamples {
					samples = append(samples, tbl.Raws[i])
				}
				continue
			}
			if rec.InvalidZoneClass != "" {
				invalid["zone_class:"+rec.InvalidZoneClass]++
			}
			if rec.InvalidHeightDistrict != "" {
				invalid["height_district:"+rec.InvalidHeightDistrict]++
			}
			for _, o := range rec.InvalidOverlays {
				invalid["overlay:"+o]++
			}
			if rec.InvalidSpecificPlan != "" {
				invalid["specific_plan:"+rec.InvalidSpecificPlan]++
			}
		}
	}

	fmt.Println("=== laplan plan ===")
	fmt.Printf("File:       %s\n", cfg.FilePath)
	fmt.Printf("Kind:       %s\n", kind.Name)
	fmt.Printf("SHA-256:    %s\n", info.SHA256)
	fmt.Printf("Size:       %d bytes\n", info.Size)
	fmt.Printf("Total rows: %d\n", info.NumRows)
	fmt.Printf("Filtered:   %d rows\n", res.RowsFiltered)
	fmt.Println()

	kept := res.RowsRead - res.RowsFiltered
	fmt.Println("Strategy distribution:")
	strategies := make(map[string]int, len(res.StrategyCounts))
	for s, n := range res.StrategyCounts {
		strategies[s] = int(n)
	}
	for _, t := range topN(strategies, len(strategies)) {
		pct := 0.0
		if kept > 0 {
			pct = 100 * float64(t.n) / float64(kept)
		}
		fmt.Printf("  %-12s %8d  %5.1f%%\n", t.key, t.n, pct)
	}

	if len(samples) > 0 {
		fmt.Printf("\nUnparsed samples (%d of %d):\n", len(samples), res.RowsUnparsed)
		for _, s := range samples {
			fmt.Printf("  %q\n", s)
		}
	}

	if len(invalid) > 0 {
		fmt.Println("\nOut-of-vocabulary tokens:")
		for _, t := range topN(invalid, planTopTokens) {
			fmt.Printf("  %-28s %8d\n", t.key, t.n)
		}
	}

	set := make(map[string]int, len(indicators))
	for _, c := range indicators {
		if n := c.Count(); n > 0 {
			set[c.Name()] = n
		}
	}
	fmt.Printf("\nIndicator columns: %d (%d non-empty)\n", len(indicators), len(set))
	for _, t := range topN(set, planTopTokens) {
		fmt.Printf("  %-28s %8d\n", t.key, t.n)
	}
	fmt.Println("Schema validation: OK")

	if cfg.FailOnUnparsed && res.RowsUnparsed > 0 {
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}
