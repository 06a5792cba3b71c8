// Package errors provides structured error handling for anagrams.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: Word source I/O errors (directory, files)
//   - 4XX: Usage and validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates word source I/O errors.
	CategoryIO Category = "IO"
	// CategoryUsage indicates the CLI was invoked incorrectly.
	CategoryUsage Category = "USAGE"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates startup must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates the operation failed.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates a skipped record; the build continues.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// Word source errors (200-299)
	ErrCodeSourceIO       = "ERR_201_SOURCE_IO"
	ErrCodeSourceNotFound = "ERR_202_SOURCE_NOT_FOUND"
	ErrCodeNotADirectory  = "ERR_203_NOT_A_DIRECTORY"
	ErrCodeRowMalformed   = "ERR_206_ROW_MALFORMED"

	// Usage errors (400-499)
	ErrCodeUsage        = "ERR_401_USAGE"
	ErrCodeInvalidInput = "ERR_402_INVALID_INPUT"

	// Internal errors (500-599)
	ErrCodeInternal    = "ERR_501_INTERNAL"
	ErrCodeIndexFailed = "ERR_505_INDEX_FAILED"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// "ERR_201_..." -> '2'
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '4':
		return CategoryUsage
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeRowMalformed:
		return SeverityWarning
	case ErrCodeSourceIO, ErrCodeSourceNotFound, ErrCodeNotADirectory, ErrCodeConfigInvalid:
		return SeverityFatal
	default:
		return SeverityError
	}
}
