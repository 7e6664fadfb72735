package validate

import (
	"regexp"
	"strconv"
	"strings"

	"baacprep/domain/table"
)

var idCleanRE = regexp.MustCompile(`[,\s]`)

// NormalizeIDColumn cleans up ID values mangled by spreadsheet round
// trips (e.g. "2,01E+11" style exports): commas and whitespace are
// stripped. With toNumeric set the column is cast to numeric only when
// every non-missing value parses; a single failure keeps the whole
// column as strings so IDs stay comparable.
//
// A table without the column is returned unchanged - the public
// extracts do not all carry the same ID column.
func NormalizeIDColumn(tbl *table.Table, idCol string, toNumeric bool) *table.Table {
	if !tbl.HasColumn(idCol) {
		return tbl
	}

	cleaned := make([]string, tbl.NumRows())
	missing := make([]bool, tbl.NumRows())
	for i, v := range tbl.Column(idCol) {
		if v.IsMissing {
			missing[i] = true
			continue
		}
		cleaned[i] = idCleanRE.ReplaceAllString(strings.TrimSpace(v.String()), "")
	}

	values := make([]table.Value, tbl.NumRows())
	if toNumeric && allParseNumeric(cleaned, missing) {
		for i := range values {
			if missing[i] {
				values[i] = table.Missing()
				continue
			}
			f, _ := strconv.ParseFloat(cleaned[i], 64)
			values[i] = table.NewNumericValue(f)
		}
	} else {
		for i := range values {
			if missing[i] {
				values[i] = table.Missing()
				continue
			}
			values[i] = table.NewStringValue(cleaned[i])
		}
	}
	return tbl.WithColumn(idCol, values)
}

func allParseNumeric(vals []string, missing []bool) bool {
	any := false
	for i, s := range vals {
		if missing[i] {
			continue
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return false
		}
		any = true
	}
	return any
}

// CoerceNumericColumns parses the named columns to numeric values.
// Unparseable cells coerce to the missing sentinel instead of failing,
// matching the tolerant ingest behavior the rest of the pipeline expects.
// Columns absent from the table are skipped.
func CoerceNumericColumns(tbl *table.Table, columns []string) *table.Table {
	out := tbl
	for _, c := range columns {
		if !out.HasColumn(c) {
			continue
		}
		values := make([]table.Value, out.NumRows())
		for i, v := range out.Column(c) {
			if f, ok := v.Float(); ok {
				values[i] = table.NewNumericValue(f)
			} else {
				values[i] = table.Missing()
			}
		}
		out = out.WithColumn(c, values)
	}
	return out
}
