// Package classify applies the case-number and zoning parsers over whole
// tables and derives fixed-schema indicator columns from the results.
package classify

import (
	"context"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gyeh/laplan/internal/normalize"
	"github.com/gyeh/laplan/internal/pcts"
	"github.com/gyeh/laplan/internal/registry"
	"github.com/gyeh/laplan/internal/zoning"
)

// minChunk keeps small batches on a single goroutine.
const minChunk = 256

// Options tunes a Classifier.
type Options struct {
	// Workers caps concurrent parse goroutines. Zero means GOMAXPROCS.
	Workers int
	// Clean runs normalize.CleanIdentifier on every raw value before parsing.
	Clean bool
	// Codebook, if set, fills zoning records no parse strategy handled.
	Codebook *Codebook
}

// Classifier parses batches of identifiers against one Registry.
type Classifier struct {
	reg    *registry.Registry
	cases  *pcts.Parser
	zoning *zoning.Parser
	opts   Options
	log    zerolog.Logger
}

// New returns a Classifier. A nil reg uses registry.Default().
func New(reg *registry.Registry, opts Options, log zerolog.Logger) *Classifier {
	if reg == nil {
		reg = registry.Default()
	}
	if opts.Workers < 1 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Classifier{
		reg:    reg,
		cases:  pcts.NewParser(reg),
		zoning: zoning.NewParser(reg),
		opts:   opts,
		log:    log,
	}
}

// Registry returns the vocabularies the Classifier validates against.
func (c *Classifier) Registry() *registry.Registry {
	return c.reg
}

func (c *Classifier) prepare(raw string) string {
	if c.opts.Clean {
		return normalize.CleanIdentifier(raw)
	}
	return raw
}

// parallelRange calls fn over disjoint [lo, hi) chunks of [0, n).
// Chunks write to distinct indices, so results keep input order.
func (c *Classifier) parallelRange(ctx context.Context, n int, fn func(lo, hi int)) error {
	if n == 0 {
		return ctx.Err()
	}
	chunk := (n + c.opts.Workers - 1) / c.opts.Workers
	if chunk < minChunk {
		chunk = minChunk
	}

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(c.opts.Workers)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(lo, hi)
			return nil
		})
	}
	return eg.Wait()
}
