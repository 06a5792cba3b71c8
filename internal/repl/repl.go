// Package repl runs the line-based interactive menu used when stdin or
// stdout is not a terminal, or when --plain is given.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Aman-CERP/anagrams/internal/output"
	"github.com/Aman-CERP/anagrams/pkg/anagram"
)

// Session reads menu choices and words from in and answers them with a
// Searcher.
type Session struct {
	searcher anagram.Searcher
	in       *bufio.Scanner
	out      *output.Writer
	logger   *slog.Logger
}

// New creates a session over in and out.
func New(searcher anagram.Searcher, in io.Reader, out io.Writer) *Session {
	return &Session{
		searcher: searcher,
		in:       bufio.NewScanner(in),
		out:      output.New(out),
		logger:   slog.Default(),
	}
}

// Run shows the menu until the user picks exit or input ends. Invalid
// choices re-prompt. End of input is a normal exit.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.out.Menu()
		s.out.Prompt(output.ChoicePrompt)
		choice, ok := s.readLine()
		if !ok {
			s.out.Newline()
			return s.inputErr()
		}

		switch choice {
		case output.ChoiceLookup:
			s.out.Prompt(output.WordPrompt)
			word, ok := s.readLine()
			if !ok {
				s.out.Newline()
				return s.inputErr()
			}
			s.lookup(word)
		case output.ChoiceExit:
			return nil
		default:
			s.logger.Debug("menu_choice_invalid", slog.String("choice", choice))
			s.out.Line(output.InvalidChoiceLine(choice))
		}
	}
}

func (s *Session) lookup(word string) {
	r := s.searcher.Find(word)
	s.logger.Debug("lookup",
		slog.String("query", r.Query),
		slog.Int("results", len(r.Words)))
	s.out.Result(r)
}

func (s *Session) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Session) inputErr() error {
	if err := s.in.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}
