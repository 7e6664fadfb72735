package charts

import (
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"baacprep/domain/core"
	"baacprep/domain/table"
)

// Resample frequencies accepted by TimeSeriesCounts
const (
	FreqHour    = "H"
	FreqDay     = "D"
	FreqWeek    = "W"
	FreqMonth   = "M"
	FreqQuarter = "Q"
	FreqYear    = "Y"
)

// TimeSeriesCounts adds a line chart of row counts over time, resampled
// at the given frequency with zero-filled gaps. The column must hold
// parsed timestamp values; rows with a missing timestamp are skipped.
func (w *Workbook) TimeSeriesCounts(tbl *table.Table, dtColumn, freq string) error {
	if err := tbl.RequireColumns(dtColumn); err != nil {
		return err
	}

	counts := make(map[time.Time]float64)
	for _, v := range tbl.Column(dtColumn) {
		t, ok := v.Time()
		if !ok {
			continue
		}
		b, err := bucket(t.UTC(), freq)
		if err != nil {
			return err
		}
		counts[b]++
	}
	if len(counts) == 0 {
		return fmt.Errorf("%w: column %q holds no parsed timestamps", core.ErrNoNumericColumns, dtColumn)
	}

	keys := make([]time.Time, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	var labels []string
	var values []float64
	for t := keys[0]; !t.After(keys[len(keys)-1]); t = nextBucket(t, freq) {
		labels = append(labels, bucketLabel(t, freq))
		values = append(values, counts[t])
	}

	sheet, err := w.addSheet("Events per " + freq)
	if err != nil {
		return err
	}
	cats, vals, err := w.writePairs(sheet, "Period", "Count", labels, values)
	if err != nil {
		return err
	}
	return w.addChart(sheet, "D2", &excelize.Chart{
		Type:   excelize.Line,
		Series: []excelize.ChartSeries{{Name: "Count", Categories: cats, Values: vals}},
		Title:  chartTitle("Events per " + freq),
		Legend: excelize.ChartLegend{Position: "none"},
	})
}

// bucket truncates a timestamp to the start of its resample period
func bucket(t time.Time, freq string) (time.Time, error) {
	switch freq {
	case FreqHour:
		return t.Truncate(time.Hour), nil
	case FreqDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	case FreqWeek:
		// Weeks start on Monday
		shift := (int(t.Weekday()) + 6) % 7
		d := t.AddDate(0, 0, -shift)
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
	case FreqMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	case FreqQuarter:
		q := (int(t.Month())-1)/3*3 + 1
		return time.Date(t.Year(), time.Month(q), 1, 0, 0, 0, 0, time.UTC), nil
	case FreqYear:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", core.ErrUnsupportedFreq, freq)
	}
}

func nextBucket(t time.Time, freq string) time.Time {
	switch freq {
	case FreqHour:
		return t.Add(time.Hour)
	case FreqDay:
		return t.AddDate(0, 0, 1)
	case FreqWeek:
		return t.AddDate(0, 0, 7)
	case FreqMonth:
		return t.AddDate(0, 1, 0)
	case FreqQuarter:
		return t.AddDate(0, 3, 0)
	default:
		return t.AddDate(1, 0, 0)
	}
}

func bucketLabel(t time.Time, freq string) string {
	switch freq {
	case FreqHour:
		return t.Format("2006-01-02 15:00")
	case FreqDay, FreqWeek:
		return t.Format("2006-01-02")
	case FreqMonth:
		return t.Format("2006-01")
	case FreqQuarter:
		return fmt.Sprintf("%d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
	default:
		return t.Format("2006")
	}
}
