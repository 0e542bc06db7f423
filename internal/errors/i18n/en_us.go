package i18n

// Error codes must match the codes defined in internal/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeAxisEmptyID           = "AXIS_EMPTY_ID"
	CodeAxisEmptyName         = "AXIS_EMPTY_NAME"
	CodeAxisInvalidBounds     = "AXIS_INVALID_BOUNDS"
	CodeAxisDefaultOutOfRange = "AXIS_DEFAULT_OUT_OF_RANGE"
	CodeAxisNoBands           = "AXIS_NO_BANDS"
	CodeAxisInvalidBand       = "AXIS_INVALID_BAND"

	CodeLedgerNoAxes        = "LEDGER_NO_AXES"
	CodeLedgerDuplicateAxis = "LEDGER_DUPLICATE_AXIS"
	CodeLedgerUnknownAxis   = "LEDGER_UNKNOWN_AXIS"
	CodeLedgerDecode        = "LEDGER_DECODE"

	CodeEventEmptyCategory    = "EVENT_EMPTY_CATEGORY"
	CodeEventMissingTimestamp = "EVENT_MISSING_TIMESTAMP"
	CodeCharacterEmptyID      = "CHARACTER_EMPTY_ID"
	CodeCategoryInvalid       = "CATEGORY_INVALID"

	CodeMigrationMissingAxes    = "MIGRATION_MISSING_AXES"
	CodeMigrationMissingValues  = "MIGRATION_MISSING_VALUES"
	CodeMigrationInvalidHistory = "MIGRATION_INVALID_HISTORY"
	CodeMigrationFailed         = "MIGRATION_FAILED"

	CodeSchemaInvalid = "SCHEMA_INVALID"

	CodeNotFound        = "NOT_FOUND"
	CodeVersionConflict = "VERSION_CONFLICT"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		// Axis definition errors
		CodeAxisEmptyID:           "Axis id cannot be empty",
		CodeAxisEmptyName:         "Axis name cannot be empty",
		CodeAxisInvalidBounds:     "Axis {{.AxisID}} minimum must be below its maximum",
		CodeAxisDefaultOutOfRange: "Axis {{.AxisID}} default value is outside its bounds",
		CodeAxisNoBands:           "Axis {{.AxisID}} must declare at least one band",
		CodeAxisInvalidBand:       "Band {{.Band}} on axis {{.AxisID}} has an invalid range",

		// Ledger errors
		CodeLedgerNoAxes:        "A ledger requires at least one axis",
		CodeLedgerDuplicateAxis: "Axis {{.AxisID}} is declared more than once",
		CodeLedgerUnknownAxis:   "Axis {{.AxisID}} is not part of this ledger",
		CodeLedgerDecode:        "Ledger document could not be decoded",

		// Service entry-point errors
		CodeEventEmptyCategory:    "Event category cannot be empty",
		CodeEventMissingTimestamp: "Event timestamp is required",
		CodeCharacterEmptyID:      "Character id is required",
		CodeCategoryInvalid:       "Invalid ledger category specified",

		// Legacy migration errors
		CodeMigrationMissingAxes:    "Legacy document is missing axis definitions",
		CodeMigrationMissingValues:  "Legacy document is missing player values",
		CodeMigrationInvalidHistory: "Legacy history for axis {{.AxisID}} is malformed",
		CodeMigrationFailed:         "Legacy migration failed",

		// Authored content errors
		CodeSchemaInvalid: "Axis document failed schema validation",

		// Storage errors
		CodeNotFound:        "The requested record was not found",
		CodeVersionConflict: "The ledger was modified by a concurrent update",
	},
}
