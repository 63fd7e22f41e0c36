package dataset

// Table is an in-memory columnar table with string cells. It is the
// contract between the CSV loaders and the analysis pipeline; any data
// source that can produce column names plus rows can feed the pipeline.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string

	index map[string]int
}

// NewTable creates a table from column names and rows. Rows shorter than
// the column list read as empty cells for the missing columns. When a
// column name repeats, lookups by name resolve to its first occurrence;
// joined tables carry both input tables' columns, and the left side must
// stay addressable.
func NewTable(name string, columns []string, rows [][]string) *Table {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if _, ok := index[col]; ok {
			continue
		}
		index[col] = i
	}
	return &Table{
		Name:    name,
		Columns: columns,
		Rows:    rows,
		index:   index,
	}
}

// ColumnIndex returns the position of a column by name.
func (t *Table) ColumnIndex(name string) (int, bool) {
	idx, ok := t.index[name]
	return idx, ok
}

// RequireColumns verifies that every named column exists, returning a
// SchemaError for the first one missing.
func (t *Table) RequireColumns(names ...string) error {
	for _, name := range names {
		if _, ok := t.index[name]; !ok {
			return &SchemaError{Table: t.Name, Column: name}
		}
	}
	return nil
}

// Cell returns the value at the given row for the named column. Missing
// columns or short rows read as the empty string.
func (t *Table) Cell(row int, column string) string {
	idx, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.Rows) {
		return ""
	}
	cells := t.Rows[row]
	if idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}
