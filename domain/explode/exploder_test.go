package explode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baacprep/domain/core"
	"baacprep/domain/table"
)

func alignedTable(rows ...table.Row) *table.Table {
	tbl := table.New("id", "A", "B", "Place")
	for _, r := range rows {
		tbl.Append(r)
	}
	return tbl
}

func row(id, a, b string) table.Row {
	return table.Row{
		"id":    table.NewStringValue(id),
		"A":     table.NewStringValue(a),
		"B":     table.NewStringValue(b),
		"Place": table.NewStringValue("Paris"),
	}
}

func cellString(t *testing.T, tbl *table.Table, row int, col string) string {
	t.Helper()
	v := tbl.Cell(row, col)
	require.False(t, v.IsMissing, "expected value at row %d col %s", row, col)
	return v.String()
}

func TestAlignedColumns_EqualLengthsStrict(t *testing.T) {
	tbl := alignedTable(row("1", "x,y", "p,q"))

	out, err := AlignedColumns(tbl, []string{"A", "B"}, ",", true)
	require.NoError(t, err)
	require.Equal(t, 2, out.NumRows())

	assert.Equal(t, "x", cellString(t, out, 0, "A"))
	assert.Equal(t, "p", cellString(t, out, 0, "B"))
	assert.Equal(t, "y", cellString(t, out, 1, "A"))
	assert.Equal(t, "q", cellString(t, out, 1, "B"))

	// Non-selected columns replicate unchanged
	assert.Equal(t, "1", cellString(t, out, 0, "id"))
	assert.Equal(t, "1", cellString(t, out, 1, "id"))
	assert.Equal(t, "Paris", cellString(t, out, 1, "Place"))
}

func TestAlignedColumns_MismatchStrictFails(t *testing.T) {
	tbl := alignedTable(
		row("1", "x,y", "p,q"),
		row("3", "x,y", "p"),
	)

	_, err := AlignedColumns(tbl, []string{"A", "B"}, ",", true)
	require.Error(t, err)
	assert.True(t, core.IsLengthMismatch(err))

	var mismatch *LengthMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 1, mismatch.Row)
	assert.Equal(t, map[string]int{"A": 2, "B": 1}, mismatch.Counts)
}

func TestAlignedColumns_MismatchPadsWithMissing(t *testing.T) {
	tbl := alignedTable(row("2", "x,y,z", "p"))

	out, err := AlignedColumns(tbl, []string{"A", "B"}, ",", false)
	require.NoError(t, err)
	require.Equal(t, 3, out.NumRows())

	assert.Equal(t, "x", cellString(t, out, 0, "A"))
	assert.Equal(t, "p", cellString(t, out, 0, "B"))
	assert.Equal(t, "y", cellString(t, out, 1, "A"))
	assert.True(t, out.Cell(1, "B").IsMissing)
	assert.Equal(t, "z", cellString(t, out, 2, "A"))
	assert.True(t, out.Cell(2, "B").IsMissing)
}

func TestAlignedColumns_EmptyRowPassesThroughOnce(t *testing.T) {
	for _, strict := range []bool{true, false} {
		tbl := alignedTable(row("1", "", ""))

		out, err := AlignedColumns(tbl, []string{"A", "B"}, ",", strict)
		require.NoError(t, err, "strict=%v", strict)
		require.Equal(t, 1, out.NumRows(), "strict=%v", strict)

		assert.True(t, out.Cell(0, "A").IsMissing)
		assert.True(t, out.Cell(0, "B").IsMissing)
		assert.Equal(t, "1", cellString(t, out, 0, "id"))
	}
}

func TestAlignedColumns_WhitespaceTokensBecomeMissing(t *testing.T) {
	tbl := alignedTable(row("1", "x, ,z", "p,q,r"))

	out, err := AlignedColumns(tbl, []string{"A", "B"}, ",", true)
	require.NoError(t, err)
	require.Equal(t, 3, out.NumRows())
	assert.Equal(t, "x", cellString(t, out, 0, "A"))
	assert.True(t, out.Cell(1, "A").IsMissing, "blank token maps to missing, not empty string")
	assert.Equal(t, "z", cellString(t, out, 2, "A"))
}

func TestAlignedColumns_RowOrderIsPreserved(t *testing.T) {
	tbl := alignedTable(
		row("1", "a,b", "c,d"),
		row("2", "e", "f"),
		row("3", "g,h,i", "j,k,l"),
	)

	out, err := AlignedColumns(tbl, []string{"A", "B"}, ",", true)
	require.NoError(t, err)
	require.Equal(t, 6, out.NumRows())

	wantIDs := []string{"1", "1", "2", "3", "3", "3"}
	wantA := []string{"a", "b", "e", "g", "h", "i"}
	for i := range wantIDs {
		assert.Equal(t, wantIDs[i], cellString(t, out, i, "id"), "row %d", i)
		assert.Equal(t, wantA[i], cellString(t, out, i, "A"), "row %d", i)
	}
}

func TestAlignedColumns_Idempotent(t *testing.T) {
	tbl := alignedTable(
		row("1", "x,y", "p,q"),
		row("2", "z", "r"),
	)

	once, err := AlignedColumns(tbl, []string{"A", "B"}, ",", true)
	require.NoError(t, err)
	twice, err := AlignedColumns(once, []string{"A", "B"}, ",", true)
	require.NoError(t, err)

	require.Equal(t, once.NumRows(), twice.NumRows())
	for i := range once.Rows {
		for _, c := range once.Columns {
			assert.True(t, once.Cell(i, c).Equal(twice.Cell(i, c)),
				"row %d col %s differs after re-explosion", i, c)
		}
	}
}

func TestAlignedColumns_DoesNotMutateInput(t *testing.T) {
	tbl := alignedTable(row("1", "x,y", "p,q"))

	_, err := AlignedColumns(tbl, []string{"A", "B"}, ",", false)
	require.NoError(t, err)

	assert.Equal(t, 1, tbl.NumRows())
	assert.Equal(t, "x,y", cellString(t, tbl, 0, "A"))
	assert.Equal(t, "p,q", cellString(t, tbl, 0, "B"))
}

func TestAlignedColumns_InputValidation(t *testing.T) {
	tbl := alignedTable(row("1", "x", "p"))

	_, err := AlignedColumns(tbl, []string{"A"}, ",", false)
	assert.ErrorIs(t, err, core.ErrTooFewColumns)

	_, err = AlignedColumns(tbl, []string{"A", "A"}, ",", false)
	assert.ErrorIs(t, err, core.ErrColumnDuplicated)

	_, err = AlignedColumns(tbl, []string{"A", "Nope"}, ",", false)
	assert.True(t, core.IsColumnNotFound(err))

	_, err = AlignedColumns(tbl, []string{"A", "B"}, "", false)
	assert.ErrorIs(t, err, core.ErrEmptySeparator)
}

func TestAlignedColumns_NonStringScalarsAreSingleTokens(t *testing.T) {
	tbl := table.New("id", "A", "B")
	tbl.Append(table.Row{
		"id": table.NewStringValue("1"),
		"A":  table.NewNumericValue(42),
		"B":  table.NewStringValue("p"),
	})

	out, err := AlignedColumns(tbl, []string{"A", "B"}, ",", true)
	require.NoError(t, err)
	require.Equal(t, 1, out.NumRows())
	f, ok := out.Cell(0, "A").Float()
	require.True(t, ok)
	assert.Equal(t, 42.0, f)
}

func TestTokenize(t *testing.T) {
	toks := Tokenize(table.NewStringValue("a , b,c"), ",")
	require.Len(t, toks, 3)
	assert.Equal(t, "a", toks[0].String())
	assert.Equal(t, "b", toks[1].String())
	assert.Equal(t, "c", toks[2].String())

	assert.Empty(t, Tokenize(table.Missing(), ","))
	assert.Empty(t, Tokenize(table.NewStringValue("   "), ","))
}
