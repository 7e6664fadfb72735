package charts

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"baacprep/domain/core"
	"baacprep/domain/table"
)

// GeoScatter adds a raw latitude/longitude scatter chart (no basemap).
// Coordinates are coerced numerically; rows where either side fails to
// parse are dropped.
func (w *Workbook) GeoScatter(tbl *table.Table, latColumn, lonColumn string) error {
	if err := tbl.RequireColumns(latColumn, lonColumn); err != nil {
		return err
	}

	var lats, lons []float64
	for i := range tbl.Rows {
		lat, okLat := tbl.Cell(i, latColumn).Float()
		lon, okLon := tbl.Cell(i, lonColumn).Float()
		if okLat && okLon {
			lats = append(lats, lat)
			lons = append(lons, lon)
		}
	}
	if len(lats) == 0 {
		return fmt.Errorf("%w: no rows with valid %q/%q pairs", core.ErrNoNumericColumns, latColumn, lonColumn)
	}

	sheet, err := w.addSheet("Geo Scatter")
	if err != nil {
		return err
	}
	if err := w.file.SetSheetRow(sheet, "A1", &[]interface{}{lonColumn, latColumn}); err != nil {
		return err
	}
	for i := range lats {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := w.file.SetSheetRow(sheet, cell, &[]interface{}{lons[i], lats[i]}); err != nil {
			return err
		}
	}
	n := len(lats) + 1
	return w.addChart(sheet, "D2", &excelize.Chart{
		Type: excelize.Scatter,
		Series: []excelize.ChartSeries{{
			Name:       latColumn,
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", sheet, n),
			Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", sheet, n),
		}},
		Title:  chartTitle(fmt.Sprintf("Accidents - %s/%s (raw scatter)", latColumn, lonColumn)),
		Legend: excelize.ChartLegend{Position: "none"},
	})
}
