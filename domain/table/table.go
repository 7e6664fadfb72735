// Package table holds the in-memory tabular model shared by all
// preprocessing transforms. Tables are treated as immutable: every
// transform returns a new table and leaves its input untouched.
package table

import (
	"baacprep/domain/core"
)

// Row maps column names to cell values
type Row map[string]Value

// Clone returns a shallow copy of the row (values are immutable)
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered sequence of rows with a stable column order
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// New creates an empty table with the given column order
func New(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// NumRows returns the row count
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumColumns returns the column count
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// HasColumn reports whether the schema contains the named column
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// RequireColumns errors on the first column absent from the schema
func (t *Table) RequireColumns(names ...string) error {
	for _, n := range names {
		if !t.HasColumn(n) {
			return core.NewColumnNotFoundError(n)
		}
	}
	return nil
}

// Append adds a row. Cells for unknown columns are ignored by readers,
// so callers are expected to stick to the declared schema.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// Cell returns the value at (row, column), missing when the cell is unset
func (t *Table) Cell(row int, column string) Value {
	if row < 0 || row >= len(t.Rows) {
		return Missing()
	}
	if v, ok := t.Rows[row][column]; ok {
		return v
	}
	return Missing()
}

// Column returns all values of one column in row order
func (t *Table) Column(name string) []Value {
	out := make([]Value, len(t.Rows))
	for i, r := range t.Rows {
		if v, ok := r[name]; ok {
			out[i] = v
		} else {
			out[i] = Missing()
		}
	}
	return out
}

// Clone deep-copies the table
func (t *Table) Clone() *Table {
	out := New(t.Columns...)
	out.Rows = make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		out.Rows[i] = r.Clone()
	}
	return out
}

// WithColumn returns a copy with the named column set to the given values.
// Appends the column to the schema when it is new; values shorter than the
// table are padded with the missing sentinel.
func (t *Table) WithColumn(name string, values []Value) *Table {
	out := t.Clone()
	if !out.HasColumn(name) {
		out.Columns = append(out.Columns, name)
	}
	for i := range out.Rows {
		if i < len(values) {
			out.Rows[i][name] = values[i]
		} else {
			out.Rows[i][name] = Missing()
		}
	}
	return out
}

// Select returns a copy containing only the named columns, in the given order
func (t *Table) Select(names ...string) (*Table, error) {
	if err := t.RequireColumns(names...); err != nil {
		return nil, err
	}
	out := New(names...)
	out.Rows = make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		nr := make(Row, len(names))
		for _, n := range names {
			if v, ok := r[n]; ok {
				nr[n] = v
			} else {
				nr[n] = Missing()
			}
		}
		out.Rows[i] = nr
	}
	return out, nil
}

// MissingRate returns the fraction of missing cells across the whole table
func (t *Table) MissingRate() float64 {
	total := len(t.Rows) * len(t.Columns)
	if total == 0 {
		return 0
	}
	missing := 0
	for _, r := range t.Rows {
		for _, c := range t.Columns {
			if v, ok := r[c]; !ok || v.IsMissing {
				missing++
			}
		}
	}
	return float64(missing) / float64(total)
}
