package query

// ColumnMetadata describes one column produced by a dry-run of a row-returning statement.
type ColumnMetadata struct {
	Name      string
	Type      string
	Length    int64
	Precision int64
	Scale     int64
	Nullable  bool
}

// Result represents the outcome of a dry-run execution.
type Result struct {
	// Columns is set for row-returning statements.
	Columns []ColumnMetadata
	// RowsReturned is the number of rows read, bounded by the statement's LIMIT.
	RowsReturned int64
	// RowsAffected is the number of rows a mutating statement would have changed.
	RowsAffected int64
	// Skipped is true when the statement was compiled but deliberately not executed.
	Skipped bool
}
