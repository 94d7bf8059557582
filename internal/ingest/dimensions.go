package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/laplan/internal/db"
	"github.com/gyeh/laplan/internal/registry"
	embedsql "github.com/gyeh/laplan/internal/sql"
)

// UpsertDimensions writes the registry's vocabularies into the ref tables so
// serving rows can be joined against the grammar they were parsed with.
func UpsertDimensions(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, reg *registry.Registry) error {
	start := time.Now()

	var kinds, codes []string
	var ambiguous []bool
	for _, p := range reg.Prefixes().Codes() {
		kinds, codes, ambiguous = append(kinds, "prefix"), append(codes, p), append(ambiguous, false)
	}
	for _, s := range reg.Suffixes().Codes() {
		kinds, codes, ambiguous = append(kinds, "suffix"), append(codes, s), append(ambiguous, reg.IsAmbiguous(s))
	}

	zones := reg.ZoneClasses().Codes()
	ranks := make([]*int32, len(zones))
	for i, z := range zones {
		if r, ok := reg.ZoneClassRank(z); ok {
			v := int32(r)
			ranks[i] = &v
		}
	}

	var zoningKinds, zoningCodes []string
	for _, group := range []struct {
		kind  string
		vocab registry.Vocabulary
	}{
		{"height_district", reg.HeightDistricts()},
		{"overlay", reg.Overlays()},
		{"specific_plan", reg.SpecificPlans()},
	} {
		for _, c := range group.vocab.Codes() {
			zoningKinds = append(zoningKinds, group.kind)
			zoningCodes = append(zoningCodes, c)
		}
	}

	return db.WithTx(ctx, pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, embedsql.UpsertCaseCodes, kinds, codes, ambiguous)
		if err != nil {
			return fmt.Errorf("upsert case codes: %w", err)
		}
		log.Info().Int64("case_codes_upserted", tag.RowsAffected()).Msg("case codes upserted")

		tag, err = tx.Exec(ctx, embedsql.UpsertZoneClasses, zones, ranks)
		if err != nil {
			return fmt.Errorf("upsert zone classes: %w", err)
		}
		log.Info().Int64("zone_classes_upserted", tag.RowsAffected()).Msg("zone classes upserted")

		tag, err = tx.Exec(ctx, embedsql.UpsertZoningCodes, zoningKinds, zoningCodes)
		if err != nil {
			return fmt.Errorf("upsert zoning codes: %w", err)
		}
		log.Info().
			Int64("zoning_codes_upserted", tag.RowsAffected()).
			Dur("duration", time.Since(start)).
			Msg("zoning codes upserted")
		return nil
	})
}
