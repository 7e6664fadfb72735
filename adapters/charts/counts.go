package charts

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"baacprep/domain/core"
	"baacprep/domain/explode"
	"baacprep/domain/table"
)

// CategoryCounts adds a horizontal bar chart of category frequencies
// for one column. Missing cells count under the "NA" label. topN <= 0
// shows all categories; normalize switches counts to percentages.
func (w *Workbook) CategoryCounts(tbl *table.Table, column string, topN int, normalize bool) error {
	if err := tbl.RequireColumns(column); err != nil {
		return err
	}

	counts := make(map[string]float64)
	for _, v := range tbl.Column(column) {
		label := "NA"
		if !v.IsMissing {
			label = v.String()
		}
		counts[label]++
	}
	labels, values := rankCounts(counts, topN, normalize, float64(tbl.NumRows()))

	sheet, err := w.addSheet(column)
	if err != nil {
		return err
	}
	cats, vals, err := w.writePairs(sheet, column, metricHeader(normalize), labels, values)
	if err != nil {
		return err
	}
	return w.addChart(sheet, "D2", &excelize.Chart{
		Type:   excelize.Bar,
		Series: []excelize.ChartSeries{{Name: metricHeader(normalize), Categories: cats, Values: vals}},
		Title:  chartTitle(fmt.Sprintf("%s - %s", column, metricHeader(normalize))),
		Legend: excelize.ChartLegend{Position: "none"},
	})
}

// NullsBar adds a bar chart of the null percentage per column, sorted
// descending so the emptiest columns lead.
func (w *Workbook) NullsBar(tbl *table.Table) error {
	type colNull struct {
		name string
		pct  float64
	}
	nulls := make([]colNull, 0, tbl.NumColumns())
	for _, c := range tbl.Columns {
		missing := 0
		for _, v := range tbl.Column(c) {
			if v.IsMissing {
				missing++
			}
		}
		pct := 0.0
		if tbl.NumRows() > 0 {
			pct = float64(missing) / float64(tbl.NumRows()) * 100
		}
		nulls = append(nulls, colNull{c, pct})
	}
	sort.SliceStable(nulls, func(i, j int) bool { return nulls[i].pct > nulls[j].pct })

	labels := make([]string, len(nulls))
	values := make([]float64, len(nulls))
	for i, n := range nulls {
		labels[i] = n.name
		values[i] = n.pct
	}

	sheet, err := w.addSheet("Nulls per Column")
	if err != nil {
		return err
	}
	cats, vals, err := w.writePairs(sheet, "Column", "Null %", labels, values)
	if err != nil {
		return err
	}
	return w.addChart(sheet, "D2", &excelize.Chart{
		Type:   excelize.Bar,
		Series: []excelize.ChartSeries{{Name: "Null %", Categories: cats, Values: vals}},
		Title:  chartTitle("Nulls per Column (%)"),
		Legend: excelize.ChartLegend{Position: "none"},
	})
}

// TokenCounts adds a bar chart of token frequencies for a multi-value
// column split on sep. Errors when the column yields no tokens at all.
func (w *Workbook) TokenCounts(tbl *table.Table, column, sep string, topN int, normalize bool) error {
	if err := tbl.RequireColumns(column); err != nil {
		return err
	}
	if sep == "" {
		return core.ErrEmptySeparator
	}

	counts := make(map[string]float64)
	total := 0.0
	for _, v := range tbl.Column(column) {
		for _, tok := range explode.Tokenize(v, sep) {
			if tok.IsMissing {
				continue
			}
			counts[tok.String()]++
			total++
		}
	}
	if total == 0 {
		return fmt.Errorf("%w: %q with sep %q", core.ErrNoTokensFound, column, sep)
	}
	labels, values := rankCounts(counts, topN, normalize, total)

	sheet, err := w.addSheet(column + " tokens")
	if err != nil {
		return err
	}
	cats, vals, err := w.writePairs(sheet, column+" token", metricHeader(normalize), labels, values)
	if err != nil {
		return err
	}
	return w.addChart(sheet, "D2", &excelize.Chart{
		Type:   excelize.Bar,
		Series: []excelize.ChartSeries{{Name: metricHeader(normalize), Categories: cats, Values: vals}},
		Title:  chartTitle(fmt.Sprintf("%s - token %s", column, metricHeader(normalize))),
		Legend: excelize.ChartLegend{Position: "none"},
	})
}

// rankCounts orders labels by descending count (ties by label for
// determinism), truncates to topN and optionally converts to percent
func rankCounts(counts map[string]float64, topN int, normalize bool, total float64) ([]string, []float64) {
	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})
	if topN > 0 && len(labels) > topN {
		labels = labels[:topN]
	}
	values := make([]float64, len(labels))
	for i, l := range labels {
		values[i] = counts[l]
		if normalize && total > 0 {
			values[i] = counts[l] / total * 100
		}
	}
	return labels, values
}

func metricHeader(normalize bool) string {
	if normalize {
		return "Percentage"
	}
	return "Count"
}
