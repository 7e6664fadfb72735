package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baacprep/domain/core"
	"baacprep/domain/table"
)

func dtTable(raw ...string) *table.Table {
	tbl := table.New("Date_and_hour")
	for _, r := range raw {
		tbl.Append(table.Row{"Date_and_hour": table.NewStringValue(r)})
	}
	return tbl
}

func TestParseDatetimeColumn(t *testing.T) {
	tbl := dtTable(
		"2019-06-14T18:45:00+02:00",
		"2019-06-14 07:30:00",
		"not a date",
		"",
	)

	out, err := ParseDatetimeColumn(tbl, "Date_and_hour", "dt")
	require.NoError(t, err)
	require.True(t, out.HasColumn("dt"))

	// Zone offsets convert to UTC
	ts, ok := out.Cell(0, "dt").Time()
	require.True(t, ok)
	assert.Equal(t, time.Date(2019, 6, 14, 16, 45, 0, 0, time.UTC), ts)

	ts, ok = out.Cell(1, "dt").Time()
	require.True(t, ok)
	assert.Equal(t, 7, ts.Hour())

	assert.True(t, out.Cell(2, "dt").IsMissing)
	assert.True(t, out.Cell(3, "dt").IsMissing)

	// Source table untouched
	assert.False(t, tbl.HasColumn("dt"))
}

func TestParseDatetimeColumn_MissingSource(t *testing.T) {
	_, err := ParseDatetimeColumn(table.New("other"), "Date_and_hour", "dt")
	assert.True(t, core.IsColumnNotFound(err))
}

func TestAddTimeParts(t *testing.T) {
	tbl := dtTable("2019-06-14T18:45:00+02:00", "junk")
	out, err := ParseDatetimeColumn(tbl, "Date_and_hour", "dt")
	require.NoError(t, err)
	out, err = AddTimeParts(out, "dt")
	require.NoError(t, err)

	year, _ := out.Cell(0, ColAccidentYear).Float()
	assert.Equal(t, 2019.0, year)
	assert.Equal(t, "2019-06-14", out.Cell(0, ColDate).String())
	assert.Equal(t, "16:45:00", out.Cell(0, ColTime).String())
	hour, _ := out.Cell(0, ColHour).Float()
	assert.Equal(t, 16.0, hour)
	month, _ := out.Cell(0, ColMonth).Float()
	assert.Equal(t, 6.0, month)

	assert.True(t, out.Cell(1, ColAccidentYear).IsMissing)
	assert.True(t, out.Cell(1, ColHour).IsMissing)
}

func TestAddTemporalFeatures(t *testing.T) {
	// 2019-06-14 is a Friday; 16:45 UTC falls in rush hour
	tbl := dtTable("2019-06-14T18:45:00+02:00", "2019-06-16T03:00:00+02:00")
	out, err := ParseDatetimeColumn(tbl, "Date_and_hour", "dt")
	require.NoError(t, err)
	out, err = AddTemporalFeatures(out, "dt", "t_")
	require.NoError(t, err)

	dow, _ := out.Cell(0, "t_dayofweek").Float()
	assert.Equal(t, 4.0, dow, "Friday should map to 4 with Mon=0")
	weekend, _ := out.Cell(0, "t_weekend").Float()
	assert.Equal(t, 0.0, weekend)
	assert.Equal(t, "afternoon", out.Cell(0, "t_part_of_day").String())
	rush, _ := out.Cell(0, "t_rush_hour").Float()
	assert.Equal(t, 1.0, rush)

	// Sunday 01:00 UTC
	dow, _ = out.Cell(1, "t_dayofweek").Float()
	assert.Equal(t, 6.0, dow)
	weekend, _ = out.Cell(1, "t_weekend").Float()
	assert.Equal(t, 1.0, weekend)
	assert.Equal(t, "night", out.Cell(1, "t_part_of_day").String())
	rush, _ = out.Cell(1, "t_rush_hour").Float()
	assert.Equal(t, 0.0, rush)
}

func TestPartOfDay(t *testing.T) {
	cases := map[float64]string{
		5:  "morning",
		11: "morning",
		12: "afternoon",
		16: "afternoon",
		17: "evening",
		20: "evening",
		21: "night",
		3:  "night",
	}
	for hour, want := range cases {
		assert.Equal(t, want, PartOfDay(hour), "hour %.0f", hour)
	}
}

func TestDeriveAge(t *testing.T) {
	tbl := table.New("Year_of_birth", "Accident_Year")
	add := func(yob, ref table.Value) {
		tbl.Append(table.Row{"Year_of_birth": yob, "Accident_Year": ref})
	}
	add(table.NewNumericValue(1985), table.NewNumericValue(2019))
	add(table.NewNumericValue(2025), table.NewNumericValue(2019)) // negative clips to 0
	add(table.NewNumericValue(1800), table.NewNumericValue(2019)) // clips to 110
	add(table.Missing(), table.NewNumericValue(2019))

	out, err := DeriveAge(tbl, "Year_of_birth", "Accident_Year", "Age", 0, 110)
	require.NoError(t, err)

	age, _ := out.Cell(0, "Age").Float()
	assert.Equal(t, 34.0, age)
	age, _ = out.Cell(1, "Age").Float()
	assert.Equal(t, 0.0, age)
	age, _ = out.Cell(2, "Age").Float()
	assert.Equal(t, 110.0, age)
	assert.True(t, out.Cell(3, "Age").IsMissing)
}
