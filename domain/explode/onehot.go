package explode

import (
	"sort"
	"strings"

	"baacprep/domain/table"
)

// OneHotColumns materializes binary indicator columns for the tokens of
// multi-value fields. Only tokens appearing at least minCount times get
// a column, which keeps rare noise tokens from blowing up the schema.
// Indicator names follow the "prefix__token" convention with spaces
// replaced by underscores; prefixes defaults to the source column name.
func OneHotColumns(tbl *table.Table, columns []string, sep string, minCount int, prefixes map[string]string) (*table.Table, error) {
	if err := tbl.RequireColumns(columns...); err != nil {
		return nil, err
	}

	out := tbl.Clone()
	for _, col := range columns {
		rowTokens := make([][]table.Value, len(tbl.Rows))
		counts := make(map[string]int)
		for i, r := range tbl.Rows {
			toks := Tokenize(r[col], sep)
			rowTokens[i] = toks
			for _, t := range toks {
				if !t.IsMissing {
					counts[t.String()]++
				}
			}
		}

		var keep []string
		for t, n := range counts {
			if n >= minCount {
				keep = append(keep, t)
			}
		}
		sort.Strings(keep)

		pref := col
		if p, ok := prefixes[col]; ok {
			pref = p
		}
		for _, tok := range keep {
			name := strings.ReplaceAll(pref+"__"+tok, " ", "_")
			values := make([]table.Value, len(tbl.Rows))
			for i := range tbl.Rows {
				values[i] = table.NewNumericValue(boolToFloat(hasToken(rowTokens[i], tok)))
			}
			out = out.WithColumn(name, values)
		}
	}
	return out, nil
}

func hasToken(tokens []table.Value, tok string) bool {
	for _, t := range tokens {
		if !t.IsMissing && t.String() == tok {
			return true
		}
	}
	return false
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
