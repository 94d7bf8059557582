// mkfixture creates a small representative Parquet fixture from a larger extract.
// Scans all rows, buckets them by parse outcome, then selects up to N rows
// favouring the rarer buckets.
// Usage: go run ./cmd/mkfixture --kind pcts --in testdata/pcts.parquet --out testdata/pcts-small.parquet --rows 200
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	goparquet "github.com/parquet-go/parquet-go"

	"github.com/gyeh/laplan/internal/model"
	"github.com/gyeh/laplan/internal/pcts"
	"github.com/gyeh/laplan/internal/registry"
	"github.com/gyeh/laplan/internal/zoning"
)

type bucket[T any] struct {
	name string
	rows []T
	want int
}

func main() {
	kind := flag.String("kind", "pcts", "input kind: pcts or zoning")
	in := flag.String("in", "testdata/pcts.parquet", "input parquet")
	out := flag.String("out", "testdata/pcts-small.parquet", "output parquet")
	maxRows := flag.Int("rows", 200, "max rows to output")
	checkOnly := flag.Bool("check", false, "only print stats, don't write")
	flag.Parse()

	reg := registry.Default()
	var err error
	switch *kind {
	case "pcts":
		p := pcts.NewParser(reg)
		err = run(*in, *out, *maxRows, *checkOnly, []*bucket[model.CaseRow]{
			{name: "missing-year", want: 20},
			{name: "x-placeholder", want: 10},
			{name: "invalid-prefix", want: 20},
			{name: "ambiguous-prefix", want: 20},
			{name: "child", want: 30},
			{name: "unparsed", want: 20},
			{name: "general", want: 0},
		}, func(row model.CaseRow) []string {
			c := p.Parse(row.CaseNumber)
			var tags []string
			switch {
			case !c.Parsed():
				tags = append(tags, "unparsed")
			case c.Strategy == pcts.StrategyMissingYear:
				tags = append(tags, "missing-year")
			}
			if c.YearPlaceholder != "" {
				tags = append(tags, "x-placeholder")
			}
			if c.InvalidPrefix != "" {
				tags = append(tags, "invalid-prefix")
			}
			if c.PrefixValid && reg.IsAmbiguous(c.Prefix) {
				tags = append(tags, "ambiguous-prefix")
			}
			if row.ParentCaseID != nil && *row.ParentCaseID != row.CaseID {
				tags = append(tags, "child")
			}
			return tags
		})
	case "zoning":
		p := zoning.NewParser(reg)
		err = run(*in, *out, *maxRows, *checkOnly, []*bucket[model.ZoningRow]{
			{name: "component", want: 30},
			{name: "single-token", want: 20},
			{name: "specific-plan", want: 20},
			{name: "invalid-component", want: 30},
			{name: "unparsed", want: 20},
			{name: "general", want: 0},
		}, func(row model.ZoningRow) []string {
			z := p.Parse(row.Zoning)
			var tags []string
			switch z.Strategy {
			case zoning.StrategyNone:
				tags = append(tags, "unparsed")
			case zoning.StrategyComponent:
				tags = append(tags, "component")
			case zoning.StrategySingleToken:
				tags = append(tags, "single-token")
			}
			if z.SpecificPlan != "" {
				tags = append(tags, "specific-plan")
			}
			if z.InvalidZoneClass != "" || z.InvalidHeightDistrict != "" ||
				len(z.InvalidOverlays) > 0 || z.InvalidSpecificPlan != "" {
				tags = append(tags, "invalid-component")
			}
			return tags
		})
	default:
		err = fmt.Errorf("unknown kind %q", *kind)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run places every row in each bucket it qualifies for (until the bucket is
// full), falling back to the trailing general bucket, then writes the merge.
func run[T any](in, out string, maxRows int, checkOnly bool, buckets []*bucket[T], tag func(T) []string) error {
	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	stat, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	pf, err := goparquet.OpenFile(f, stat.Size())
	if err != nil {
		return fmt.Errorf("open parquet: %w", err)
	}

	reader := goparquet.NewGenericReader[T](pf)
	defer reader.Close()

	bucketMap := make(map[string]*bucket[T])
	for _, b := range buckets {
		bucketMap[b.name] = b
	}
	general := buckets[len(buckets)-1]
	seen := make(map[string]int)

	buf := make([]T, 1024)
	var totalRead int
	for {
		n, readErr := reader.Read(buf)
		for i := 0; i < n; i++ {
			totalRead++
			row := buf[i]
			placed := false
			for _, t := range tag(row) {
				seen[t]++
				if b := bucketMap[t]; b != nil && len(b.rows) < b.want {
					b.rows = append(b.rows, row)
					placed = true
					break
				}
			}
			if !placed && len(general.rows) < maxRows {
				general.rows = append(general.rows, row)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("read: %w", readErr)
		}
	}
	fmt.Printf("Scanned %d rows\n", totalRead)
	for _, b := range buckets[:len(buckets)-1] {
		fmt.Printf("  %-18s %d\n", b.name, seen[b.name])
	}
	if checkOnly {
		return nil
	}

	var selected []T
	for _, b := range buckets {
		for _, row := range b.rows {
			if len(selected) >= maxRows {
				break
			}
			selected = append(selected, row)
		}
	}

	outFile, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer outFile.Close()

	writer := goparquet.NewGenericWriter[T](outFile)
	if _, err := writer.Write(selected); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close writer: %w", err)
	}

	fmt.Printf("Wrote %d rows to %s\n", len(selected), out)
	for _, b := range buckets {
		fmt.Printf("  %-18s %d\n", b.name, len(b.rows))
	}
	return nil
}
