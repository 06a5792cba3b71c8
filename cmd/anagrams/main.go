// Package main provides the entry point for the anagrams CLI.
package main

import (
	"fmt"
	"os"

	"github.com/Aman-CERP/anagrams/cmd/anagrams/cmd"
	apperrors "github.com/Aman-CERP/anagrams/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, apperrors.FormatForCLI(err))
		os.Exit(1)
	}
}
