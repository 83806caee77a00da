package data

// Row is one measurement record: named columns plus a guaranteed
// primary identifier. Rows are immutable once ingested; re-ingesting
// a dataset replaces its rows wholesale.
type Row struct {
	PrimaryID string
	cols      map[string]Value
}

// NewRow creates a row with the given primary ID and columns.
// The column map is not copied; callers hand over ownership.
func NewRow(primaryID string, cols map[string]Value) Row {
	if cols == nil {
		cols = map[string]Value{}
	}
	return Row{PrimaryID: primaryID, cols: cols}
}

// Get returns the named column value, or Null if absent.
func (r Row) Get(col string) Value {
	if col == "" {
		return Null
	}
	return r.cols[col]
}

// Str returns the named column as a string ("" if absent).
func (r Row) Str(col string) string { return r.Get(col).Str() }

// Float returns the named column as a float and whether a numeric
// value was present.
func (r Row) Float(col string) (float64, bool) { return r.Get(col).Float() }

// Columns returns the column names present on the row.
func (r Row) Columns() []string {
	out := make([]string, 0, len(r.cols))
	for k := range r.cols {
		out = append(out, k)
	}
	return out
}

// ColumnMap returns the underlying column map. Callers must not mutate it.
func (r Row) ColumnMap() map[string]Value { return r.cols }
