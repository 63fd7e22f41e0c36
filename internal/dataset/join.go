package dataset

import "fmt"

// InnerJoin joins two tables on the named key column, producing a new
// table with the left columns followed by the right columns (minus the
// duplicated key). Right-side rows are indexed by key so the join is a
// single pass over the left table; row order follows the left table with
// right-side matches in their original order.
//
// A missing key column on either side is a JoinError, as is a join that
// produces zero rows: disjoint key spaces mean the caller paired the
// wrong tables, and silently returning an empty table would hide that.
func InnerJoin(left, right *Table, key string) (*Table, error) {
	if _, ok := left.ColumnIndex(key); !ok {
		return nil, &JoinError{
			Left: left.Name, Right: right.Name, Key: key,
			Reason: fmt.Sprintf("key column missing from table %q", left.Name),
		}
	}
	rightKeyIdx, ok := right.ColumnIndex(key)
	if !ok {
		return nil, &JoinError{
			Left: left.Name, Right: right.Name, Key: key,
			Reason: fmt.Sprintf("key column missing from table %q", right.Name),
		}
	}

	// Index right rows by key value.
	rightByKey := make(map[string][]int, right.NumRows())
	for i, row := range right.Rows {
		if rightKeyIdx >= len(row) {
			continue
		}
		k := row[rightKeyIdx]
		rightByKey[k] = append(rightByKey[k], i)
	}

	columns := make([]string, 0, len(left.Columns)+len(right.Columns)-1)
	columns = append(columns, left.Columns...)
	for i, col := range right.Columns {
		if i == rightKeyIdx {
			continue
		}
		columns = append(columns, col)
	}

	var rows [][]string
	for i := range left.Rows {
		k := left.Cell(i, key)
		for _, rightRow := range rightByKey[k] {
			row := make([]string, 0, len(columns))
			for _, col := range left.Columns {
				row = append(row, left.Cell(i, col))
			}
			for j, col := range right.Columns {
				if j == rightKeyIdx {
					continue
				}
				row = append(row, right.Cell(rightRow, col))
			}
			rows = append(rows, row)
		}
	}

	if len(rows) == 0 {
		return nil, &JoinError{
			Left: left.Name, Right: right.Name, Key: key,
			Reason: "join produced zero rows; key spaces appear disjoint",
		}
	}

	name := left.Name + "+" + right.Name
	return NewTable(name, columns, rows), nil
}
