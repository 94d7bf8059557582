// Package parquetwrite writes classified tables to Parquet. The indicator
// columns depend on the registry, so schemas are built at runtime rather
// than from struct tags.
package parquetwrite

import (
	"fmt"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"
)

const writeBatchSize = 1024

// column is one output column and its per-row value. A null Value writes
// a null; only optional columns may produce one.
type column struct {
	name     string
	node     parquet.Node
	optional bool
	value    func(i int) parquet.Value
}

func stringCol(name string, get func(i int) string) column {
	return column{name: name, node: parquet.String(), value: func(i int) parquet.Value {
		return parquet.ByteArrayValue([]byte(get(i)))
	}}
}

func optStringCol(name string, get func(i int) string) column {
	return column{name: name, node: parquet.Optional(parquet.String()), optional: true, value: func(i int) parquet.Value {
		s := get(i)
		if s == "" {
			return parquet.NullValue()
		}
		return parquet.ByteArrayValue([]byte(s))
	}}
}

func boolCol(name string, get func(i int) bool) column {
	return column{name: name, node: parquet.Leaf(parquet.BooleanType), value: func(i int) parquet.Value {
		return parquet.BooleanValue(get(i))
	}}
}

func int64Col(name string, get func(i int) int64) column {
	return column{name: name, node: parquet.Int(64), value: func(i int) parquet.Value {
		return parquet.Int64Value(get(i))
	}}
}

func optInt64Col(name string, get func(i int) (int64, bool)) column {
	return column{name: name, node: parquet.Optional(parquet.Int(64)), optional: true, value: func(i int) parquet.Value {
		v, ok := get(i)
		if !ok {
			return parquet.NullValue()
		}
		return parquet.Int64Value(v)
	}}
}

func joined(codes []string) string {
	return strings.Join(codes, "-")
}

// writeTable writes rows rows of cols to path and returns the row count.
func writeTable(path, name string, rows int, cols []column) (int64, error) {
	group := make(parquet.Group, len(cols))
	for _, c := range cols {
		if _, dup := group[c.name]; dup {
			return 0, fmt.Errorf("duplicate output column %q", c.name)
		}
		group[c.name] = c.node
	}
	schema := parquet.NewSchema(name, group)

	// Group fields are stored sorted by name; look up each leaf's index.
	leaf := make(map[string]int, len(cols))
	for i, p := range schema.Columns() {
		leaf[p[0]] = i
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w := parquet.NewWriter(f, schema)
	buf := make([]parquet.Row, 0, writeBatchSize)
	var written int64
	flush := func() error {
		n, err := w.WriteRows(buf)
		written += int64(n)
		buf = buf[:0]
		return err
	}

	for i := 0; i < rows; i++ {
		row := make(parquet.Row, len(cols))
		for _, c := range cols {
			idx := leaf[c.name]
			v := c.value(i)
			def := 0
			if c.optional && !v.IsNull() {
				def = 1
			}
			row[idx] = v.Level(0, def, idx)
		}
		buf = append(buf, row)
		if len(buf) == writeBatchSize {
			if err := flush(); err != nil {
				return written, fmt.Errorf("write rows: %w", err)
			}
		}
	}
	if len(buf) > 0 {
		if err := flush(); err != nil {
			return written, fmt.Errorf("write rows: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return written, fmt.Errorf("close writer: %w", err)
	}
	return written, f.Close()
}
