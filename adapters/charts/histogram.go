package charts

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/xuri/excelize/v2"

	"baacprep/domain/core"
	"baacprep/domain/table"
)

// Histogram adds a column chart of an equal-width histogram over one
// numeric column. Values are coerced numerically; missing and
// unparseable cells are dropped. bins <= 0 falls back to 30.
func (w *Workbook) Histogram(tbl *table.Table, column string, bins int) error {
	if err := tbl.RequireColumns(column); err != nil {
		return err
	}
	if bins <= 0 {
		bins = 30
	}

	var data []float64
	for _, v := range tbl.Column(column) {
		if f, ok := v.Float(); ok {
			data = append(data, f)
		}
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: column %q has no numeric values", core.ErrNoNumericColumns, column)
	}

	lo, _ := stats.Min(data)
	hi, _ := stats.Max(data)
	labels, values := binCounts(data, lo, hi, bins)

	sheet, err := w.addSheet(column + " hist")
	if err != nil {
		return err
	}
	cats, vals, err := w.writePairs(sheet, column, "Count", labels, values)
	if err != nil {
		return err
	}
	return w.addChart(sheet, "D2", &excelize.Chart{
		Type:   excelize.Col,
		Series: []excelize.ChartSeries{{Name: "Count", Categories: cats, Values: vals}},
		Title:  chartTitle("Histogram of " + column),
		Legend: excelize.ChartLegend{Position: "none"},
	})
}

func binCounts(data []float64, lo, hi float64, bins int) ([]string, []float64) {
	if hi == lo {
		// Degenerate distribution collapses to a single bin
		return []string{fmt.Sprintf("%.4g", lo)}, []float64{float64(len(data))}
	}
	width := (hi - lo) / float64(bins)
	labels := make([]string, bins)
	values := make([]float64, bins)
	for i := 0; i < bins; i++ {
		labels[i] = fmt.Sprintf("%.4g", lo+width*float64(i))
	}
	for _, v := range data {
		idx := int((v - lo) / width)
		if idx < 0 {
			idx = 0
		}
		if idx >= bins { // right edge belongs to the last bin
			idx = bins - 1
		}
		values[idx]++
	}
	return labels, values
}
