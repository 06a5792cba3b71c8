// Package logging provides opt-in file-based logging with rotation for anagrams.
// When the --debug flag is set, structured JSON logs are written to
// ~/.anagrams/logs/ for troubleshooting dictionary loading. `anagrams serve`
// always logs there because stdout belongs to JSON-RPC.
//
// By default (without --debug), logs go to stderr at warn level so that
// stdout carries only lookup results.
//
// Viewer reads the JSON log back for `anagrams logs`.
package logging
