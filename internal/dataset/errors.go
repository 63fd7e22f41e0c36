package dataset

import "fmt"

// SchemaError reports a required column missing from an input table.
// It is raised eagerly at component entry, before any computation.
type SchemaError struct {
	Table  string
	Column string
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %q: required column %q is missing", e.Table, e.Column)
}

// JoinError reports a join that cannot be performed or produced no rows.
// An empty inner join on the order key signals disjoint key spaces, which
// is almost always a caller error rather than a meaningful empty result.
type JoinError struct {
	Left   string
	Right  string
	Key    string
	Reason string
}

// Error implements the error interface
func (e *JoinError) Error() string {
	return fmt.Sprintf("join %q with %q on %q: %s", e.Left, e.Right, e.Key, e.Reason)
}

// ParseError reports a cell value that could not be converted to its
// typed form. It carries the table, column, row and raw value so data
// quality problems can be traced back to the source file.
type ParseError struct {
	Table  string
	Column string
	Row    int
	Value  string
	Err    error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("table %q row %d: column %q value %q: %v", e.Table, e.Row, e.Column, e.Value, e.Err)
}

// Unwrap allows errors.Is and errors.As to reach the underlying cause
func (e *ParseError) Unwrap() error {
	return e.Err
}
