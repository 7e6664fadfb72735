package temporal

import (
	"math"

	"baacprep/domain/table"
)

// Column names produced by AddTimeParts
const (
	ColAccidentYear = "Accident_Year"
	ColDate         = "Date"
	ColTime         = "Time"
	ColHour         = "Hour"
	ColMonth        = "Month"
)

// AddTimeParts derives the standard time part columns from a parsed
// timestamp column: Accident_Year, Date, Time, Hour and Month. Rows
// with a missing timestamp get missing parts.
func AddTimeParts(tbl *table.Table, dtCol string) (*table.Table, error) {
	if err := tbl.RequireColumns(dtCol); err != nil {
		return nil, err
	}
	n := tbl.NumRows()
	years := make([]table.Value, n)
	dates := make([]table.Value, n)
	times := make([]table.Value, n)
	hours := make([]table.Value, n)
	months := make([]table.Value, n)

	for i, v := range tbl.Column(dtCol) {
		t, ok := v.Time()
		if !ok {
			years[i], dates[i], times[i], hours[i], months[i] =
				table.Missing(), table.Missing(), table.Missing(), table.Missing(), table.Missing()
			continue
		}
		years[i] = table.NewNumericValue(float64(t.Year()))
		dates[i] = table.NewStringValue(t.Format("2006-01-02"))
		times[i] = table.NewStringValue(t.Format("15:04:05"))
		hours[i] = table.NewNumericValue(float64(t.Hour()))
		months[i] = table.NewNumericValue(float64(t.Month()))
	}

	out := tbl.WithColumn(ColAccidentYear, years)
	out = out.WithColumn(ColDate, dates)
	out = out.WithColumn(ColTime, times)
	out = out.WithColumn(ColHour, hours)
	out = out.WithColumn(ColMonth, months)
	return out, nil
}

// PartOfDay buckets an hour into morning/afternoon/evening/night
func PartOfDay(hour float64) string {
	switch {
	case math.IsNaN(hour):
		return "unknown"
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 21:
		return "evening"
	default:
		return "night"
	}
}

var rushHours = map[int]bool{7: true, 8: true, 9: true, 16: true, 17: true, 18: true, 19: true}

// AddTemporalFeatures adds lightweight EDA features from the parsed
// timestamp column, each prefixed (default "t_"):
//
//	<prefix>dayofweek   Mon=0 .. Sun=6
//	<prefix>weekend     0/1
//	<prefix>part_of_day morning/afternoon/evening/night/unknown
//	<prefix>rush_hour   0/1, rough proxy for 7-9 and 16-19
func AddTemporalFeatures(tbl *table.Table, dtCol, prefix string) (*table.Table, error) {
	if err := tbl.RequireColumns(dtCol); err != nil {
		return nil, err
	}
	if prefix == "" {
		prefix = "t_"
	}
	n := tbl.NumRows()
	dow := make([]table.Value, n)
	weekend := make([]table.Value, n)
	partOfDay := make([]table.Value, n)
	rush := make([]table.Value, n)

	// Prefer an existing Hour column over recomputing from the timestamp
	hourCol := tbl.HasColumn(ColHour)

	for i, v := range tbl.Column(dtCol) {
		t, ok := v.Time()
		if !ok {
			dow[i], weekend[i], rush[i] = table.Missing(), table.Missing(), table.Missing()
			partOfDay[i] = table.NewStringValue("unknown")
			continue
		}
		// Go weekday counts from Sunday; shift to Mon=0
		d := (int(t.Weekday()) + 6) % 7
		dow[i] = table.NewNumericValue(float64(d))
		weekend[i] = table.NewNumericValue(boolToFloat(d == 5 || d == 6))

		hour := float64(t.Hour())
		if hourCol {
			if h, ok := tbl.Cell(i, ColHour).Float(); ok {
				hour = h
			}
		}
		partOfDay[i] = table.NewStringValue(PartOfDay(hour))
		rush[i] = table.NewNumericValue(boolToFloat(rushHours[int(hour)]))
	}

	out := tbl.WithColumn(prefix+"dayofweek", dow)
	out = out.WithColumn(prefix+"weekend", weekend)
	out = out.WithColumn(prefix+"part_of_day", partOfDay)
	out = out.WithColumn(prefix+"rush_hour", rush)
	return out, nil
}

// DeriveAge computes target = reference year - year of birth, clipped
// to [clipLo, clipHi]. Rows where either side is missing or non-numeric
// get a missing age.
func DeriveAge(tbl *table.Table, yobCol, refYearCol, targetCol string, clipLo, clipHi float64) (*table.Table, error) {
	if err := tbl.RequireColumns(yobCol, refYearCol); err != nil {
		return nil, err
	}
	values := make([]table.Value, tbl.NumRows())
	for i := range tbl.Rows {
		yob, okY := tbl.Cell(i, yobCol).Float()
		ref, okR := tbl.Cell(i, refYearCol).Float()
		if !okY || !okR {
			values[i] = table.Missing()
			continue
		}
		age := math.Min(math.Max(ref-yob, clipLo), clipHi)
		values[i] = table.NewNumericValue(age)
	}
	return tbl.WithColumn(targetCol, values), nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
