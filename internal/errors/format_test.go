package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatForCLI(t *testing.T) {
	// Given: an error with a suggestion
	err := New(ErrCodeSourceNotFound, "dictionary folder /nope does not exist", nil).
		WithSuggestion("Set ANAGRAMS_DICTIONARY_DIR or pass the folder as an argument")

	// When: formatting for the CLI
	out := FormatForCLI(err)

	// Then: message, hint and code are present
	assert.Contains(t, out, "Error: dictionary folder /nope does not exist")
	assert.Contains(t, out, "Hint: Set ANAGRAMS_DICTIONARY_DIR")
	assert.Contains(t, out, "Code: ERR_202_SOURCE_NOT_FOUND")
}

func TestFormatForCLI_StandardAndWrapped(t *testing.T) {
	assert.Equal(t, "", FormatForCLI(nil))

	out := FormatForCLI(errors.New("boom"))
	assert.Contains(t, out, "Error: boom")
	assert.Contains(t, out, ErrCodeInternal)

	wrapped := fmt.Errorf("startup: %w", UsageError("too many arguments"))
	out = FormatForCLI(wrapped)
	assert.Contains(t, out, "Error: too many arguments")
	assert.Contains(t, out, ErrCodeUsage)
}

func TestFormatJSON(t *testing.T) {
	err := New(ErrCodeSourceIO, "read failed", errors.New("EIO")).WithDetail("path", "a.csv")

	data, jerr := FormatJSON(err)
	require.NoError(t, jerr)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ErrCodeSourceIO, decoded["code"])
	assert.Equal(t, "IO", decoded["category"])
	assert.Equal(t, "FATAL", decoded["severity"])
	assert.Equal(t, "EIO", decoded["cause"])

	data, jerr = FormatJSON(nil)
	require.NoError(t, jerr)
	assert.Equal(t, "null", string(data))
}

func TestFormatForLog(t *testing.T) {
	assert.Nil(t, FormatForLog(nil))
	assert.Equal(t, map[string]any{"error": "plain"}, FormatForLog(errors.New("plain")))

	fields := FormatForLog(ParseWarning("w.csv", 3, errors.New("bare quote")))
	assert.Equal(t, ErrCodeRowMalformed, fields["error_code"])
	assert.Equal(t, "w.csv", fields["detail_path"])
	assert.Equal(t, "3", fields["detail_line"])
	assert.Equal(t, "bare quote", fields["cause"])
}

func TestLogAttrs(t *testing.T) {
	args := LogAttrs(errors.New("plain"))

	assert.Equal(t, []any{"error", "plain"}, args)
	assert.Empty(t, LogAttrs(nil))
}
