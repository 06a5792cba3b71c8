package wordsource

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	apperrors "github.com/Aman-CERP/anagrams/internal/errors"
)

// ctxCheckInterval is how many rows are decoded between cancellation checks.
const ctxCheckInterval = 4096

type fileResult struct {
	words    []string
	rows     int
	blank    int
	warnings []*apperrors.AppError
	err      error
}

// readFile decodes one delimited file. Rows are headerless and may have any
// number of fields; only the first is kept.
func readFile(ctx context.Context, path string, delimiter rune) fileResult {
	if err := ctx.Err(); err != nil {
		return fileResult{err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return fileResult{err: apperrors.SourceIOError(path, err)}
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(bufio.NewReader(f))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	// a bare quote inside a field is an ordinary character
	r.LazyQuotes = true
	r.ReuseRecord = true

	var res fileResult
	for {
		if res.rows%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fileResult{err: err}
			}
		}

		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				res.warnings = append(res.warnings, apperrors.ParseWarning(path, pe.StartLine, pe.Err))
				continue
			}
			return fileResult{err: apperrors.SourceIOError(path, err)}
		}

		res.rows++
		if len(record) == 0 || record[0] == "" {
			res.blank++
			continue
		}
		// fields share the row's backing string
		res.words = append(res.words, strings.Clone(record[0]))
	}

	return res
}
