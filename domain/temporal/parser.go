// Package temporal parses the accident timestamp column and derives the
// time-based feature columns used throughout the exploratory analysis.
package temporal

import (
	"strings"
	"time"

	"baacprep/domain/table"
)

// Layouts tried in order when parsing the raw datetime column. The
// public extracts carry ISO-8601 with a zone offset; the fallbacks
// cover zone-less and date-only cells seen in older samples.
var parseLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDatetimeColumn parses the string datetime column into a
// timestamp-typed target column, converted to UTC. Unparseable or
// missing cells coerce to the missing sentinel rather than failing,
// so one bad row never aborts a whole load.
func ParseDatetimeColumn(tbl *table.Table, sourceCol, targetCol string) (*table.Table, error) {
	if err := tbl.RequireColumns(sourceCol); err != nil {
		return nil, err
	}
	values := make([]table.Value, tbl.NumRows())
	for i, v := range tbl.Column(sourceCol) {
		values[i] = parseValue(v)
	}
	return tbl.WithColumn(targetCol, values), nil
}

func parseValue(v table.Value) table.Value {
	if v.IsMissing {
		return table.Missing()
	}
	if t, ok := v.Time(); ok {
		return table.NewTimestampValue(t.UTC())
	}
	raw := strings.TrimSpace(v.String())
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return table.NewTimestampValue(t.UTC())
		}
	}
	return table.Missing()
}
