// Package errors provides structured error handling for the attribute
// ledger core, with machine-readable codes and gRPC status mapping.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Axis definition errors
	CodeAxisEmptyID           Code = "AXIS_EMPTY_ID"
	CodeAxisEmptyName         Code = "AXIS_EMPTY_NAME"
	CodeAxisInvalidBounds     Code = "AXIS_INVALID_BOUNDS"
	CodeAxisDefaultOutOfRange Code = "AXIS_DEFAULT_OUT_OF_RANGE"
	CodeAxisNoBands           Code = "AXIS_NO_BANDS"
	CodeAxisInvalidBand       Code = "AXIS_INVALID_BAND"

	// Ledger errors
	CodeLedgerNoAxes        Code = "LEDGER_NO_AXES"
	CodeLedgerDuplicateAxis Code = "LEDGER_DUPLICATE_AXIS"
	CodeLedgerUnknownAxis   Code = "LEDGER_UNKNOWN_AXIS"
	CodeLedgerDecode        Code = "LEDGER_DECODE"

	// Service entry-point errors
	CodeEventEmptyCategory    Code = "EVENT_EMPTY_CATEGORY"
	CodeEventMissingTimestamp Code = "EVENT_MISSING_TIMESTAMP"
	CodeCharacterEmptyID      Code = "CHARACTER_EMPTY_ID"
	CodeCategoryInvalid       Code = "CATEGORY_INVALID"

	// Legacy migration errors
	CodeMigrationMissingAxes    Code = "MIGRATION_MISSING_AXES"
	CodeMigrationMissingValues  Code = "MIGRATION_MISSING_VALUES"
	CodeMigrationInvalidHistory Code = "MIGRATION_INVALID_HISTORY"
	CodeMigrationFailed         Code = "MIGRATION_FAILED"

	// Authored content errors
	CodeSchemaInvalid Code = "SCHEMA_INVALID"

	// Storage errors
	CodeNotFound        Code = "NOT_FOUND"
	CodeVersionConflict Code = "VERSION_CONFLICT"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeAxisEmptyID,
		CodeAxisEmptyName,
		CodeAxisInvalidBounds,
		CodeAxisDefaultOutOfRange,
		CodeAxisNoBands,
		CodeAxisInvalidBand,
		CodeLedgerNoAxes,
		CodeLedgerDuplicateAxis,
		CodeLedgerUnknownAxis,
		CodeLedgerDecode,
		CodeEventEmptyCategory,
		CodeEventMissingTimestamp,
		CodeCharacterEmptyID,
		CodeCategoryInvalid,
		CodeMigrationMissingAxes,
		CodeMigrationMissingValues,
		CodeMigrationInvalidHistory,
		CodeSchemaInvalid:
		return codes.InvalidArgument

	// NotFound - missing records
	case CodeNotFound:
		return codes.NotFound

	// FailedPrecondition - state doesn't allow operation
	case CodeVersionConflict:
		return codes.FailedPrecondition

	// Internal - wrapped failures
	case CodeMigrationFailed:
		return codes.Internal

	default:
		return codes.Internal
	}
}
