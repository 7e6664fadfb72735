// Package testkit builds synthetic BAAC-like accident tables for tests.
package testkit

import (
	"fmt"
	"math/rand"

	"baacprep/domain/table"
)

var (
	securityMeasures = []string{"Seat Belt", "Helmet", "Children device", "Reflective vest", "Airbag"}
	measureUsage     = []string{"Yes", "No", "Not determinable"}
	weather          = []string{"Normal", "Light rain", "Heavy rain", "Fog", "Snow", "Dazzling"}
	sexes            = []string{"Man", "Woman"}
)

// Generator produces deterministic synthetic accident rows
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator with a fixed seed for reproducibility
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// AccidentTable builds a table with the columns the preprocessing
// pipeline touches: an ID, a datetime, aligned multi-value columns and
// a couple of plain categoricals.
func (g *Generator) AccidentTable(rows int) *table.Table {
	tbl := table.New(
		"ID_accident", "Date_and_hour", "Security_measures",
		"User_of_security_measures", "Sex", "Weather_condition",
		"Year_of_birth", "Latitude", "Longitude",
	)
	for i := 0; i < rows; i++ {
		n := 1 + g.rng.Intn(3)
		measures := make([]string, n)
		usage := make([]string, n)
		for j := 0; j < n; j++ {
			measures[j] = securityMeasures[g.rng.Intn(len(securityMeasures))]
			usage[j] = measureUsage[g.rng.Intn(len(measureUsage))]
		}
		tbl.Append(table.Row{
			"ID_accident":               table.NewStringValue(fmt.Sprintf("2019%06d", i+1)),
			"Date_and_hour":             table.NewStringValue(fmt.Sprintf("2019-0%d-1%dT0%d:30:00+01:00", 1+i%9, i%10, i%10)),
			"Security_measures":         table.NewStringValue(join(measures)),
			"User_of_security_measures": table.NewStringValue(join(usage)),
			"Sex":                       table.NewStringValue(sexes[g.rng.Intn(len(sexes))]),
			"Weather_condition":         table.NewStringValue(weather[g.rng.Intn(len(weather))]),
			"Year_of_birth":             table.NewStringValue(fmt.Sprintf("%d", 1950+g.rng.Intn(55))),
			"Latitude":                  table.NewStringValue(fmt.Sprintf("%.5f", 48.8+g.rng.Float64()*0.3)),
			"Longitude":                 table.NewStringValue(fmt.Sprintf("%.5f", 2.2+g.rng.Float64()*0.3)),
		})
	}
	return tbl
}

// AlignedRow builds a single row with explicit multi-value cells, handy
// for explosion edge cases
func AlignedRow(id string, cells map[string]string) table.Row {
	row := table.Row{"ID_accident": table.NewStringValue(id)}
	for k, v := range cells {
		row[k] = table.NewStringValue(v)
	}
	return row
}

func join(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ","
		}
		out += p
	}
	return out
}
