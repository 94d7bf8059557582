package parquetread

import (
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/laplan/internal/model"
)

// Codebook is the schema name used for manual zoning corrections.
const Codebook = "codebook"

var requiredColumns = map[string][]string{
	model.KindPCTS.Name:   {"case_id", model.KindPCTS.Column},
	model.KindZoning.Name: {model.KindZoning.Column},
	Codebook:              {"zoning", "zone_class"},
}

// ValidateSchema checks that the Parquet schema contains every column the
// named table kind needs.
func ValidateSchema(schema *parquet.Schema, kind string) error {
	required, ok := requiredColumns[kind]
	if !ok {
		return fmt.Errorf("unknown table kind %q", kind)
	}

	columns := make(map[string]bool)
	for _, field := range schema.Fields() {
		columns[strings.ToLower(field.Name())] = true
	}

	var missing []string
	for _, col := range required {
		if !columns[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s table missing required column(s): %s",
			kind, strings.Join(missing, ", "))
	}
	return nil
}
