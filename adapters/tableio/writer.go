package tableio

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"baacprep/domain/core"
	"baacprep/domain/table"
)

// WriteTable writes a table to CSV or XLSX depending on the extension.
// Missing cells serialize as empty strings in both formats.
func WriteTable(tbl *table.Table, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return writeCSV(tbl, path)
	case ".xlsx":
		return writeXLSX(tbl, path)
	default:
		return fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func writeCSV(tbl *table.Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(tbl.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	record := make([]string, len(tbl.Columns))
	for i := range tbl.Rows {
		for j, c := range tbl.Columns {
			record[j] = tbl.Cell(i, c).String()
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	log.Printf("[TableWriter] CSV written: %s (%d rows)", path, tbl.NumRows())
	return nil
}

func writeXLSX(tbl *table.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(tbl.Columns))
	for j, c := range tbl.Columns {
		header[j] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range tbl.Rows {
		cells := make([]interface{}, len(tbl.Columns))
		for j, c := range tbl.Columns {
			v := tbl.Cell(i, c)
			if v.IsMissing {
				cells[j] = nil
			} else if n, ok := v.Float(); ok && v.Type == table.ValueTypeNumeric {
				cells[j] = n
			} else {
				cells[j] = v.String()
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save XLSX: %w", err)
	}
	log.Printf("[TableWriter] XLSX written: %s (%d rows)", path, tbl.NumRows())
	return nil
}
