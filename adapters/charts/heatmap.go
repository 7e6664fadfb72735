package charts

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/stat"

	"baacprep/domain/core"
	"baacprep/domain/table"
)

// CorrelationHeatmap writes a Pearson correlation matrix over the given
// numeric columns as a color-scaled sheet grid. A nil column list
// auto-detects every column with at least two numeric values; errors
// when nothing numeric is available.
func (w *Workbook) CorrelationHeatmap(tbl *table.Table, numericColumns []string) error {
	if numericColumns == nil {
		numericColumns = detectNumericColumns(tbl)
	} else if err := tbl.RequireColumns(numericColumns...); err != nil {
		return err
	}
	if len(numericColumns) == 0 {
		return core.ErrNoNumericColumns
	}

	sheet, err := w.addSheet("Correlation")
	if err != nil {
		return err
	}

	header := make([]interface{}, len(numericColumns)+1)
	header[0] = ""
	for i, c := range numericColumns {
		header[i+1] = c
	}
	if err := w.file.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, ci := range numericColumns {
		row := make([]interface{}, len(numericColumns)+1)
		row[0] = ci
		for j, cj := range numericColumns {
			row[j+1] = pairwiseCorrelation(tbl, ci, cj)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := w.file.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	// Blue-white-red color scale over [-1, 1]
	end, _ := excelize.CoordinatesToCellName(len(numericColumns)+1, len(numericColumns)+1)
	area := fmt.Sprintf("B2:%s", end)
	return w.file.SetConditionalFormat(sheet, area, []excelize.ConditionalFormatOptions{{
		Type:     "3_color_scale",
		Criteria: "=",
		MinType:  "num", MinValue: "-1", MinColor: "#5A8AC6",
		MidType: "num", MidValue: "0", MidColor: "#FFFFFF",
		MaxType: "num", MaxValue: "1", MaxColor: "#F8696B",
	}})
}

// pairwiseCorrelation computes Pearson correlation over the rows where
// both columns hold numeric values
func pairwiseCorrelation(tbl *table.Table, colA, colB string) float64 {
	var xs, ys []float64
	for i := range tbl.Rows {
		a, okA := tbl.Cell(i, colA).Float()
		b, okB := tbl.Cell(i, colB).Float()
		if okA && okB {
			xs = append(xs, a)
			ys = append(ys, b)
		}
	}
	if len(xs) < 2 {
		return 0
	}
	return stat.Correlation(xs, ys, nil)
}

func detectNumericColumns(tbl *table.Table) []string {
	var out []string
	for _, c := range tbl.Columns {
		n := 0
		for _, v := range tbl.Column(c) {
			if v.Type == table.ValueTypeNumeric {
				n++
			}
		}
		if n >= 2 {
			out = append(out, c)
		}
	}
	return out
}
