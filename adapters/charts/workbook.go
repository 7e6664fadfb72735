// Package charts renders the exploratory accident charts into Excel
// workbooks using excelize native charting. Each helper writes one data
// sheet plus one chart, mirroring the single-chart-per-function shape of
// the exploratory analysis: category counts, histogram, correlation
// heatmap, null percentages, time series counts, geo scatter and
// multi-value token counts.
package charts

import (
	"fmt"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook accumulates chart sheets and saves them as one .xlsx file
type Workbook struct {
	file   *excelize.File
	sheets int
}

// NewWorkbook creates an empty chart workbook
func NewWorkbook() *Workbook {
	return &Workbook{file: excelize.NewFile()}
}

// Save writes the workbook to disk and releases its resources. The
// default empty sheet is dropped once at least one chart sheet exists.
func (w *Workbook) Save(path string) error {
	if w.sheets > 0 {
		if err := w.file.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("failed to drop default sheet: %w", err)
		}
	}
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save chart workbook: %w", err)
	}
	log.Printf("[Charts] Workbook saved: %s (%d charts)", path, w.sheets)
	return w.file.Close()
}

// addSheet creates a fresh sheet with a sanitized unique name
func (w *Workbook) addSheet(name string) (string, error) {
	w.sheets++
	sheet := sanitizeSheetName(fmt.Sprintf("%d %s", w.sheets, name))
	if _, err := w.file.NewSheet(sheet); err != nil {
		return "", fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}
	return sheet, nil
}

// writePairs writes label/value pairs with a header row and returns the
// category and value ranges for chart series references
func (w *Workbook) writePairs(sheet, labelHeader, valueHeader string, labels []string, values []float64) (cats, vals string, err error) {
	if err := w.file.SetSheetRow(sheet, "A1", &[]interface{}{labelHeader, valueHeader}); err != nil {
		return "", "", err
	}
	for i := range labels {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := w.file.SetSheetRow(sheet, cell, &[]interface{}{labels[i], values[i]}); err != nil {
			return "", "", err
		}
	}
	n := len(labels) + 1
	cats = fmt.Sprintf("'%s'!$A$2:$A$%d", sheet, n)
	vals = fmt.Sprintf("'%s'!$B$2:$B$%d", sheet, n)
	return cats, vals, nil
}

// addChart places a chart next to the data block
func (w *Workbook) addChart(sheet, anchor string, chart *excelize.Chart) error {
	if err := w.file.AddChart(sheet, anchor, chart); err != nil {
		return fmt.Errorf("failed to add chart on %q: %w", sheet, err)
	}
	return nil
}

func chartTitle(text string) []excelize.RichTextRun {
	return []excelize.RichTextRun{{Text: text}}
}

// sanitizeSheetName trims to the 31-char Excel limit and drops the
// characters Excel rejects in sheet names
func sanitizeSheetName(name string) string {
	r := strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", " ", "]", " ")
	name = strings.TrimSpace(r.Replace(name))
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
