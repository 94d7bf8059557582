package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gyeh/laplan/internal/classify"
)

// newClassifier builds a Classifier from the registry, codebook and
// options in cfg.
func newClassifier(log zerolog.Logger) (*classify.Classifier, error) {
	reg, err := cfg.BuildRegistry()
	if err != nil {
		return nil, err
	}
	opts := classify.Options{Workers: cfg.Workers, Clean: cfg.Clean}
	if cfg.CodebookPath != "" {
		cb, err := classify.LoadCodebook(reg, cfg.CodebookPath)
		if err != nil {
			return nil, fmt.Errorf("load codebook: %w", err)
		}
		log.Info().Int("entries", cb.Len()).Str("path", cfg.CodebookPath).Msg("codebook loaded")
		opts.Codebook = cb
	}
	return classify.New(reg, opts, log), nil
}
