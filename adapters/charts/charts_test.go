package charts

import (
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"baacprep/domain/core"
	"baacprep/domain/table"
	"baacprep/internal/testkit"
)

func saveAndOpen(t *testing.T, w *Workbook) *excelize.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "charts.xlsx")
	require.NoError(t, w.Save(path))
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestCategoryCounts(t *testing.T) {
	tbl := table.New("Weather_condition")
	for _, v := range []string{"Normal", "Normal", "Fog", ""} {
		tbl.Append(table.Row{"Weather_condition": table.NewStringValue(v)})
	}

	w := NewWorkbook()
	require.NoError(t, w.CategoryCounts(tbl, "Weather_condition", 10, false))

	f := saveAndOpen(t, w)
	sheets := f.GetSheetList()
	require.Len(t, sheets, 1)

	rows, err := f.GetRows(sheets[0])
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 4)
	// Most frequent category first; missing counted as NA
	assert.Equal(t, "Normal", rows[1][0])
	assert.Equal(t, "2", rows[1][1])
	labels := []string{rows[2][0], rows[3][0]}
	assert.Contains(t, labels, "NA")
}

func TestCategoryCounts_MissingColumn(t *testing.T) {
	err := NewWorkbook().CategoryCounts(table.New("a"), "nope", 10, false)
	assert.True(t, core.IsColumnNotFound(err))
}

func TestNullsBar(t *testing.T) {
	tbl := table.New("full", "half")
	tbl.Append(table.Row{"full": table.NewStringValue("x"), "half": table.Missing()})
	tbl.Append(table.Row{"full": table.NewStringValue("y"), "half": table.NewStringValue("z")})

	w := NewWorkbook()
	require.NoError(t, w.NullsBar(tbl))

	f := saveAndOpen(t, w)
	rows, err := f.GetRows(f.GetSheetList()[0])
	require.NoError(t, err)
	assert.Equal(t, "half", rows[1][0], "emptiest column sorts first")
	assert.Equal(t, "50", rows[1][1])
}

func TestHistogram(t *testing.T) {
	tbl := table.New("Age")
	for _, v := range []float64{10, 20, 20, 30, 90} {
		tbl.Append(table.Row{"Age": table.NewNumericValue(v)})
	}

	w := NewWorkbook()
	require.NoError(t, w.Histogram(tbl, "Age", 4))

	f := saveAndOpen(t, w)
	rows, err := f.GetRows(f.GetSheetList()[0])
	require.NoError(t, err)
	require.Len(t, rows, 5) // header + 4 bins
}

func TestHistogram_NonFiniteCells(t *testing.T) {
	tbl := table.New("Width")
	for _, v := range []string{"1", "NaN", "5", "Inf", "-Inf"} {
		tbl.Append(table.Row{"Width": table.NewStringValue(v)})
	}

	w := NewWorkbook()
	require.NoError(t, w.Histogram(tbl, "Width", 4))

	f := saveAndOpen(t, w)
	rows, err := f.GetRows(f.GetSheetList()[0])
	require.NoError(t, err)
	require.Len(t, rows, 5) // header + 4 bins over the finite values only

	var total float64
	for _, r := range rows[1:] {
		if len(r) > 1 {
			n, err := strconv.ParseFloat(r[1], 64)
			require.NoError(t, err)
			total += n
		}
	}
	assert.Equal(t, 2.0, total, "NaN/Inf cells are dropped, not binned")
}

func TestHistogram_NoNumericValues(t *testing.T) {
	tbl := table.New("col")
	tbl.Append(table.Row{"col": table.NewStringValue("abc")})
	err := NewWorkbook().Histogram(tbl, "col", 10)
	assert.ErrorIs(t, err, core.ErrNoNumericColumns)
}

func TestCorrelationHeatmap(t *testing.T) {
	tbl := table.New("x", "y")
	for i := 0; i < 10; i++ {
		tbl.Append(table.Row{
			"x": table.NewNumericValue(float64(i)),
			"y": table.NewNumericValue(float64(i) * 2),
		})
	}

	w := NewWorkbook()
	require.NoError(t, w.CorrelationHeatmap(tbl, nil))

	f := saveAndOpen(t, w)
	rows, err := f.GetRows(f.GetSheetList()[0])
	require.NoError(t, err)
	require.Len(t, rows, 3)
	diag, err := strconv.ParseFloat(rows[1][1], 64)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, diag, 1e-9, "diagonal is 1")
	off, err := strconv.ParseFloat(rows[1][2], 64)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, off, 1e-9, "perfect linear relation")
}

func TestCorrelationHeatmap_NoNumericColumns(t *testing.T) {
	tbl := table.New("cat")
	tbl.Append(table.Row{"cat": table.NewStringValue("a")})
	err := NewWorkbook().CorrelationHeatmap(tbl, nil)
	assert.ErrorIs(t, err, core.ErrNoNumericColumns)
}

func TestTimeSeriesCounts(t *testing.T) {
	tbl := table.New("dt")
	stamps := []time.Time{
		time.Date(2019, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2019, 1, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2019, 3, 5, 0, 0, 0, 0, time.UTC),
	}
	for _, s := range stamps {
		tbl.Append(table.Row{"dt": table.NewTimestampValue(s)})
	}

	w := NewWorkbook()
	require.NoError(t, w.TimeSeriesCounts(tbl, "dt", FreqMonth))

	f := saveAndOpen(t, w)
	rows, err := f.GetRows(f.GetSheetList()[0])
	require.NoError(t, err)
	require.Len(t, rows, 4, "gap months are zero-filled")
	assert.Equal(t, "2019-01", rows[1][0])
	assert.Equal(t, "2", rows[1][1])
	assert.Equal(t, "2019-02", rows[2][0])
	if len(rows[2]) > 1 {
		assert.Equal(t, "0", rows[2][1])
	}
	assert.Equal(t, "2019-03", rows[3][0])
}

func TestTimeSeriesCounts_BadFreq(t *testing.T) {
	tbl := table.New("dt")
	tbl.Append(table.Row{"dt": table.NewTimestampValue(time.Now())})
	err := NewWorkbook().TimeSeriesCounts(tbl, "dt", "fortnight")
	assert.ErrorIs(t, err, core.ErrUnsupportedFreq)
}

func TestGeoScatter(t *testing.T) {
	tbl := testkit.NewGenerator(5).AccidentTable(20)

	w := NewWorkbook()
	require.NoError(t, w.GeoScatter(tbl, "Latitude", "Longitude"))

	f := saveAndOpen(t, w)
	rows, err := f.GetRows(f.GetSheetList()[0])
	require.NoError(t, err)
	assert.Len(t, rows, 21)
}

func TestTokenCounts(t *testing.T) {
	tbl := table.New("Security_measures")
	for _, v := range []string{"Seat Belt,Helmet", "Seat Belt", ""} {
		tbl.Append(table.Row{"Security_measures": table.NewStringValue(v)})
	}

	w := NewWorkbook()
	require.NoError(t, w.TokenCounts(tbl, "Security_measures", ",", 15, false))

	f := saveAndOpen(t, w)
	rows, err := f.GetRows(f.GetSheetList()[0])
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Seat Belt", rows[1][0])
	assert.Equal(t, "2", rows[1][1])
}

func TestTokenCounts_NoTokens(t *testing.T) {
	tbl := table.New("col")
	tbl.Append(table.Row{"col": table.Missing()})
	err := NewWorkbook().TokenCounts(tbl, "col", ",", 10, false)
	assert.ErrorIs(t, err, core.ErrNoTokensFound)
}

func TestWorkbook_MultipleCharts(t *testing.T) {
	tbl := testkit.NewGenerator(9).AccidentTable(15)

	w := NewWorkbook()
	require.NoError(t, w.CategoryCounts(tbl, "Weather_condition", 10, true))
	require.NoError(t, w.TokenCounts(tbl, "Security_measures", ",", 10, false))
	require.NoError(t, w.NullsBar(tbl))

	f := saveAndOpen(t, w)
	assert.Len(t, f.GetSheetList(), 3)
}
