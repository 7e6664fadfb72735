package dataset

import (
	"time"

	"baacprep/domain/core"
	"baacprep/domain/table"
)

// Dataset wraps a loaded table with provenance metadata
type Dataset struct {
	ID         core.ID      `json:"id"`
	SourcePath string       `json:"source_path"`
	Format     string       `json:"format"` // "csv" or "xlsx"
	Table      *table.Table `json:"-"`

	// Dataset statistics
	RecordCount int     `json:"record_count"`
	FieldCount  int     `json:"field_count"`
	MissingRate float64 `json:"missing_rate"`

	LoadedAt time.Time `json:"loaded_at"`
}

// New creates a dataset around a freshly loaded table
func New(sourcePath, format string, tbl *table.Table) *Dataset {
	return &Dataset{
		ID:          core.NewID(),
		SourcePath:  sourcePath,
		Format:      format,
		Table:       tbl,
		RecordCount: tbl.NumRows(),
		FieldCount:  tbl.NumColumns(),
		MissingRate: tbl.MissingRate(),
		LoadedAt:    time.Now(),
	}
}
