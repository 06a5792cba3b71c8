package mcp

import (
	"github.com/Aman-CERP/anagrams/internal/async"
	"github.com/Aman-CERP/anagrams/internal/telemetry"
)

// FindAnagramsInput defines the input schema for the find_anagrams tool.
type FindAnagramsInput struct {
	Word string `json:"word" jsonschema:"the word whose anagrams to find; case and surrounding whitespace are ignored"`
}

// FindAnagramsOutput defines the output schema for the find_anagrams tool.
type FindAnagramsOutput struct {
	Query   string   `json:"query" jsonschema:"the normalized query word"`
	Key     string   `json:"key" jsonschema:"the canonical key: the query's characters in sorted order"`
	Words   []string `json:"words" jsonschema:"dictionary words sharing the key, in dictionary order"`
	Count   int      `json:"count" jsonschema:"number of words found"`
	Message string   `json:"message" jsonschema:"the result as the CLI prints it"`
}

// IndexStatusInput defines the input schema for the index_status tool (no parameters).
type IndexStatusInput struct{}

// IndexStatusOutput defines the output schema for the index_status tool.
type IndexStatusOutput struct {
	Dictionary async.IndexProgressSnapshot `json:"dictionary"`
	Lookups    telemetry.Snapshot          `json:"lookups"`
	Version    string                      `json:"version"`
}
