package core

// Table is a raw, ordered record table with named string columns, as handed
// over by an acquisition adapter (CSV export, spreadsheet range, store).
// The core never mutates a Table.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable creates an empty table with the given column names.
func NewTable(columns ...string) Table {
	return Table{Columns: columns}
}

// Append adds a row. Short rows are padded with empty cells, long rows
// truncated to the declared columns.
func (t *Table) Append(cells ...string) {
	row := make([]string, len(t.Columns))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// HasColumn reports whether the table declares the named column.
func (t Table) HasColumn(name string) bool {
	return t.columnIndex(name) >= 0
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

func (t Table) columnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// cell returns the value at (row, column index), empty when out of range.
func (t Table) cell(row, col int) string {
	if col < 0 || row < 0 || row >= len(t.Rows) || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}
