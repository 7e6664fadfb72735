// Package validate holds the lightweight schema checks, normalizers and
// the per-column quality report used before any BAAC-style table enters
// the explosion or charting stages.
package validate

import (
	"baacprep/domain/core"
	"baacprep/domain/table"
)

// RequiredColumns is the BAAC-style schema surfaced in the public
// accident extracts. Extra columns are always allowed; these must exist.
var RequiredColumns = []string{
	"ID_accident",
	"Date_and_hour",
	"Security_measures",
	"User_of_security_measures",
	"Place",
	"Sex",
	"Light",
	"User_category",
	"Intersection",
	"Weather_condition",
	"Collision",
	"Surface",
	"Circulation",
	"Width_of_the_roadway",
	"Width_of_the_central_bar",
	"Number_of_channels",
	"Road_category",
	"Plan",
	"Situation",
	"Year_of_birth",
	"Pedestrian_action",
	"Health_condition",
	"Point_of_shock",
	"Manuver",
	"Vehicle_category",
	// Sparse in some extracts but still expected in the schema:
	"Reserved_lane",
	"Infrastructure",
	"Profile",
}

// NumericSuggested lists columns that should be coerced to numeric
var NumericSuggested = []string{
	"Width_of_the_roadway",
	"Width_of_the_central_bar",
	"Number_of_channels",
}

// RequiredColumnsCheck errors when any required column is entirely
// absent, naming every missing column at once.
func RequiredColumnsCheck(tbl *table.Table) error {
	var missing []string
	for _, c := range RequiredColumns {
		if !tbl.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return core.NewMissingColumnsError(missing)
	}
	return nil
}
