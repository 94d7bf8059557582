package sql

import (
	"embed"
)

// Migrations holds the DDL applied by db.ApplyMigrations, in filename order.
//
//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/register_source_file.sql
var RegisterSourceFile string

//go:embed queries/lookup_source_file.sql
var LookupSourceFile string

//go:embed queries/update_source_status.sql
var UpdateSourceStatus string

//go:embed queries/mark_source_loaded.sql
var MarkSourceLoaded string

//go:embed queries/upsert_case_codes.sql
var UpsertCaseCodes string

//go:embed queries/upsert_zone_classes.sql
var UpsertZoneClasses string

//go:embed queries/upsert_zoning_codes.sql
var UpsertZoningCodes string

//go:embed queries/delete_serving_cases.sql
var DeleteServingCases string

//go:embed queries/transform_pcts_cases.sql
var TransformPCTSCases string

//go:embed queries/transform_case_entitlements.sql
var TransformCaseEntitlements string

//go:embed queries/delete_serving_zoning.sql
var DeleteServingZoning string

//go:embed queries/transform_zoning.sql
var TransformZoning string

//go:embed queries/delete_staging_cases.sql
var DeleteStagingCases string

//go:embed queries/delete_staging_case_codes.sql
var DeleteStagingCaseCodes string

//go:embed queries/delete_staging_zoning.sql
var DeleteStagingZoning string
