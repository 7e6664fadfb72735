package validate

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"baacprep/domain/table"
)

// ColumnQuality summarizes one column for the quality report
type ColumnQuality struct {
	Column        string   `json:"column"`
	InferredType  string   `json:"inferred_type"` // "string", "numeric", "timestamp", "empty"
	NonNull       int      `json:"non_null"`
	NullPct       float64  `json:"null_pct"`
	UniqueCount   int      `json:"unique_count,omitempty"`
	ExampleValues []string `json:"example_values,omitempty"`
	// Numeric summary, only populated for numeric columns
	Mean   float64 `json:"mean,omitempty"`
	Median float64 `json:"median,omitempty"`
	Min    float64 `json:"min,omitempty"`
	Max    float64 `json:"max,omitempty"`
}

// Report is the full per-column quality report, sorted by descending
// null percentage so the worst columns surface first.
type Report struct {
	RowCount int             `json:"row_count"`
	Columns  []ColumnQuality `json:"columns"`
}

const maxExampleValues = 3

// QualityReport computes a compact data quality summary of the table.
// Numeric columns get mean/median/min/max via montanaflynn/stats; string
// columns get unique counts and the first few distinct example values.
func QualityReport(tbl *table.Table) *Report {
	report := &Report{RowCount: tbl.NumRows()}
	for _, c := range tbl.Columns {
		report.Columns = append(report.Columns, profileColumn(c, tbl.Column(c)))
	}
	sort.SliceStable(report.Columns, func(i, j int) bool {
		return report.Columns[i].NullPct > report.Columns[j].NullPct
	})
	return report
}

func profileColumn(name string, values []table.Value) ColumnQuality {
	q := ColumnQuality{Column: name}
	var numeric []float64
	var examples []string
	seen := make(map[string]bool)
	counts := map[table.ValueType]int{}

	for _, v := range values {
		if v.IsMissing {
			continue
		}
		q.NonNull++
		counts[v.Type]++
		switch v.Type {
		case table.ValueTypeNumeric:
			if f, ok := v.Float(); ok {
				numeric = append(numeric, f)
			}
		case table.ValueTypeString:
			s := v.String()
			if !seen[s] {
				seen[s] = true
				if len(examples) < maxExampleValues {
					examples = append(examples, s)
				}
			}
		}
	}

	if len(values) > 0 {
		q.NullPct = round2(float64(len(values)-q.NonNull) / float64(len(values)) * 100)
	}
	q.InferredType = dominantType(counts)

	if q.InferredType == "string" {
		q.UniqueCount = len(seen)
		q.ExampleValues = examples
	}
	if len(numeric) > 0 {
		q.Mean, _ = stats.Mean(numeric)
		q.Median, _ = stats.Median(numeric)
		q.Min, _ = stats.Min(numeric)
		q.Max, _ = stats.Max(numeric)
	}
	return q
}

// typePriority fixes the winner on count ties so reports are stable
// across runs.
var typePriority = []table.ValueType{
	table.ValueTypeNumeric,
	table.ValueTypeTimestamp,
	table.ValueTypeString,
}

func dominantType(counts map[table.ValueType]int) string {
	best, bestN := "empty", 0
	for _, t := range typePriority {
		if n := counts[t]; n > bestN {
			best, bestN = string(t), n
		}
	}
	return best
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
