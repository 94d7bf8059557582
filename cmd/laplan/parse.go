package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/laplan/internal/exitcode"
	"github.com/gyeh/laplan/internal/logging"
	"github.com/gyeh/laplan/internal/model"
	"github.com/gyeh/laplan/internal/normalize"
	"github.com/gyeh/laplan/internal/pcts"
	"github.com/gyeh/laplan/internal/zoning"
)

var parseCmd = &cobra.Command{
	Use:   "parse [VALUE...]",
	Short: "Parse case numbers or zoning strings and print one JSON object per line",
	Long: "Parses each VALUE, or each line of stdin when no values are given, " +
		"and prints the structured record as JSON lines.",
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&cfg.Kind, "kind", model.KindPCTS.Name, "Value kind: pcts or zoning")
	rootCmd.AddCommand(parseCmd)
}

type parseOutput struct {
	Input     string               `json:"input"`
	Canonical string               `json:"canonical,omitempty"`
	Case      *pcts.CaseIdentifier `json:"case,omitempty"`
	Zoning    *zoning.ZoningRecord `json:"zoning,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	kind, err := cfg.TableKind()
	if err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	reg, err := cfg.BuildRegistry()
	if err != nil {
		log.Error().Err(err).Msg("registry setup failed")
		os.Exit(exitcode.ValidationError)
	}

	var parse func(string) parseOutput
	switch kind {
	case model.KindPCTS:
		p := pcts.NewParser(reg)
		parse = func(s string) parseOutput {
			rec := p.Parse(s)
			return parseOutput{Input: s, Canonical: rec.String(), Case: &rec}
		}
	default:
		p := zoning.NewParser(reg)
		parse = func(s string) parseOutput {
			rec := p.Parse(s)
			return parseOutput{Input: s, Canonical: rec.String(), Zoning: &rec}
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	emit := func(raw string) error {
		s := raw
		if cfg.Clean {
			s = normalize.CleanIdentifier(s)
		}
		out := parse(s)
		out.Input = raw
		return enc.Encode(out)
	}

	if len(args) > 0 {
		for _, a := range args {
			if err := emit(a); err != nil {
				return err
			}
		}
		return nil
	}
	return scanLines(cmd.InOrStdin(), emit)
}

func scanLines(r io.Reader, fn func(string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		if err := fn(sc.Text()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
