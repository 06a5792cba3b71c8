// Package output formats the lines the anagrams CLI prints.
//
// The Line functions return the exact user-facing strings so the plain REPL,
// the TUI and the one-shot command render identical results. Writer prints
// them to an io.Writer.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/Aman-CERP/anagrams/internal/wordsource"
	"github.com/Aman-CERP/anagrams/pkg/anagram"
)

// Menu choices accepted by the interactive prompt.
const (
	ChoiceLookup = "1"
	ChoiceExit   = "2"
)

// BuildingLine announces that an index build has started.
func BuildingLine(folder string) string {
	return fmt.Sprintf("Building anagram solver from %s...", folder)
}

// ReadyLine announces that the index is ready for queries.
func ReadyLine() string {
	return "Anagram solver ready!"
}

// ResultLine renders a lookup result using the normalized query.
func ResultLine(r anagram.Result) string {
	if r.Empty() {
		return fmt.Sprintf("No anagrams found for '%s'", r.Query)
	}
	return fmt.Sprintf("Anagrams of '%s': %s", r.Query, strings.Join(r.Words, ", "))
}

// MenuLines are the options shown by the interactive prompt.
func MenuLines() []string {
	return []string{
		"",
		"  [" + ChoiceLookup + "] Look up a word",
		"  [" + ChoiceExit + "] Exit",
		"",
	}
}

// Prompts shown by the interactive session.
const (
	ChoicePrompt = "Choice: "
	WordPrompt   = "Word: "
)

// InvalidChoiceLine explains a rejected menu choice.
func InvalidChoiceLine(choice string) string {
	return fmt.Sprintf("Invalid choice '%s', enter %s or %s", choice, ChoiceLookup, ChoiceExit)
}

// Writer provides formatted output for CLI.
type Writer struct {
	out io.Writer
}

// New creates a new output Writer.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Line prints msg followed by a newline.
// Errors from writing are intentionally ignored for console output.
func (w *Writer) Line(msg string) {
	_, _ = fmt.Fprintln(w.out, msg)
}

// Linef prints a formatted line.
func (w *Writer) Linef(format string, args ...any) {
	w.Line(fmt.Sprintf(format, args...))
}

// Prompt prints msg without a trailing newline.
func (w *Writer) Prompt(msg string) {
	_, _ = fmt.Fprint(w.out, msg)
}

// Building prints BuildingLine.
func (w *Writer) Building(folder string) {
	w.Line(BuildingLine(folder))
}

// Ready prints ReadyLine.
func (w *Writer) Ready() {
	w.Line(ReadyLine())
}

// Result prints ResultLine.
func (w *Writer) Result(r anagram.Result) {
	w.Line(ResultLine(r))
}

// Menu prints MenuLines.
func (w *Writer) Menu() {
	for _, l := range MenuLines() {
		w.Line(l)
	}
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	w.Line("Warning: " + msg)
}

// Warningf prints a formatted warning message.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}

// Stats prints a summary of an index and the walk that built it.
func (w *Writer) Stats(folder string, idx anagram.IndexStats, build anagram.BuildStats, src wordsource.Stats) {
	w.Linef("Dictionary:      %s", folder)
	w.Linef("Files read:      %d", src.Files)
	w.Linef("Rows read:       %d", src.Rows)
	w.Linef("Rows skipped:    %d", src.Skipped)
	w.Linef("Words indexed:   %d", build.Indexed)
	w.Linef("Duplicates:      %d", build.Duplicates)
	w.Linef("Anagram classes: %d", idx.Keys)
	w.Linef("Singletons:      %d", idx.Singletons)
	if idx.LargestClassSize > 0 {
		w.Linef("Largest class:   %s (%d words)", idx.LargestClass, idx.LargestClassSize)
	}
}
