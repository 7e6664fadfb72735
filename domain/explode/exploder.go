// Package explode implements the aligned multi-value "data explosion"
// used on BAAC-style accident tables. Cells like
//
//	Security_measures:          "Seat Belt,Helmet"
//	User_of_security_measures:  "Yes,Yes"
//
// encode position-wise corresponding token lists; exploding them yields
// one output row per aligned token tuple with every other column copied
// unchanged.
package explode

import (
	"fmt"
	"sort"
	"strings"

	"baacprep/domain/core"
	"baacprep/domain/table"
)

// LengthMismatchError reports a strict-mode token count disagreement.
// It carries the offending row index and the per-column token counts so
// the caller can decide between fixing upstream data and padding mode.
type LengthMismatchError struct {
	Row    int
	Counts map[string]int
}

func (e *LengthMismatchError) Error() string {
	parts := make([]string, 0, len(e.Counts))
	for c, n := range e.Counts {
		parts = append(parts, fmt.Sprintf("%s=%d", c, n))
	}
	sort.Strings(parts)
	return fmt.Sprintf("row %d: %v: %s", e.Row, core.ErrLengthMismatch, strings.Join(parts, " "))
}

func (e *LengthMismatchError) Unwrap() error {
	return core.ErrLengthMismatch
}

// Tokenize splits a cell into its ordered token sequence.
//
// String cells are split on sep with surrounding whitespace stripped;
// a token that is empty after stripping becomes the missing sentinel,
// not an empty string. Missing cells yield a zero-length sequence.
// Non-string scalars (numeric, timestamp) are single-token sequences of
// themselves, which makes re-exploding an exploded table a no-op.
func Tokenize(v table.Value, sep string) []table.Value {
	if v.IsMissing {
		return nil
	}
	if v.Type != table.ValueTypeString {
		return []table.Value{v}
	}
	raw := strings.Split(v.String(), sep)
	// A lone empty string is a fully empty cell, not a one-token sequence.
	if len(raw) == 1 && strings.TrimSpace(raw[0]) == "" {
		return nil
	}
	out := make([]table.Value, len(raw))
	for i, p := range raw {
		out[i] = table.NewStringValue(strings.TrimSpace(p))
	}
	return out
}

// AlignedColumns jointly explodes a set of aligned multi-value columns.
//
// Every selected column of a row is tokenized on sep; row i of the output
// carries the i-th token of each selected column. With strictEqualLengths
// set, rows whose selected columns disagree in token count fail with a
// *LengthMismatchError; otherwise shorter sequences are right-padded with
// the missing sentinel up to the row maximum.
//
// Rows where every selected column is empty pass through exactly once,
// with missing sentinels in the selected columns - they are never dropped.
// The input table is not mutated.
func AlignedColumns(tbl *table.Table, columns []string, sep string, strictEqualLengths bool) (*table.Table, error) {
	if err := validateSelection(tbl, columns, sep); err != nil {
		return nil, err
	}

	out := table.New(tbl.Columns...)
	for ri, row := range tbl.Rows {
		tokens := make(map[string][]table.Value, len(columns))
		target := 0
		for _, c := range columns {
			tokens[c] = Tokenize(row[c], sep)
			if n := len(tokens[c]); n > target {
				target = n
			}
		}

		if strictEqualLengths {
			if err := checkEqualLengths(ri, columns, tokens); err != nil {
				return nil, err
			}
		}

		if target == 0 {
			nr := row.Clone()
			for _, c := range columns {
				nr[c] = table.Missing()
			}
			out.Append(nr)
			continue
		}

		for i := 0; i < target; i++ {
			nr := row.Clone()
			for _, c := range columns {
				if i < len(tokens[c]) {
					nr[c] = tokens[c][i]
				} else {
					nr[c] = table.Missing()
				}
			}
			out.Append(nr)
		}
	}
	return out, nil
}

func validateSelection(tbl *table.Table, columns []string, sep string) error {
	if sep == "" {
		return core.ErrEmptySeparator
	}
	if len(columns) < 2 {
		return fmt.Errorf("%w: got %d", core.ErrTooFewColumns, len(columns))
	}
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c] {
			return fmt.Errorf("%w: %q", core.ErrColumnDuplicated, c)
		}
		seen[c] = true
	}
	return tbl.RequireColumns(columns...)
}

func checkEqualLengths(row int, columns []string, tokens map[string][]table.Value) error {
	first := len(tokens[columns[0]])
	for _, c := range columns[1:] {
		if len(tokens[c]) != first {
			counts := make(map[string]int, len(columns))
			for _, cc := range columns {
				counts[cc] = len(tokens[cc])
			}
			return &LengthMismatchError{Row: row, Counts: counts}
		}
	}
	return nil
}
