package explode

import (
	"strings"

	"baacprep/domain/core"
	"baacprep/domain/table"
)

// DetectMultiValueColumns heuristically flags columns likely to contain
// multi-value strings: a column is a candidate when the share of its
// non-missing string values containing sep reaches minShare.
//
// With a nil candidates list every string-typed column is scanned. The
// detector is stateless; minShare is the single tuning knob.
func DetectMultiValueColumns(tbl *table.Table, candidates []string, sep string, minShare float64) ([]string, error) {
	if sep == "" {
		return nil, core.ErrEmptySeparator
	}
	if minShare < 0 || minShare > 1 {
		return nil, core.ErrInvalidThreshold
	}
	if candidates == nil {
		candidates = stringColumns(tbl)
	} else if err := tbl.RequireColumns(candidates...); err != nil {
		return nil, err
	}

	var flagged []string
	for _, c := range candidates {
		nonMissing, withSep := 0, 0
		for _, v := range tbl.Column(c) {
			if v.IsMissing {
				continue
			}
			nonMissing++
			if strings.Contains(v.String(), sep) {
				withSep++
			}
		}
		if nonMissing == 0 {
			continue
		}
		if float64(withSep)/float64(nonMissing) >= minShare {
			flagged = append(flagged, c)
		}
	}
	return flagged, nil
}

// stringColumns returns columns whose non-missing values are all strings
func stringColumns(tbl *table.Table) []string {
	var out []string
	for _, c := range tbl.Columns {
		isString := false
		allString := true
		for _, v := range tbl.Column(c) {
			if v.IsMissing {
				continue
			}
			if v.Type == table.ValueTypeString {
				isString = true
			} else {
				allString = false
				break
			}
		}
		if isString && allString {
			out = append(out, c)
		}
	}
	return out
}
