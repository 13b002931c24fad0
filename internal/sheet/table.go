package sheet

// Record is one data row keyed by cleaned header name. Values are nil,
// int64, float64, string or civil.Date (after date resolution).
type Record map[string]any

// RecordSet is an ordered set of records sharing one header. Columns keeps
// the header order because substring resolution and positional date lookup
// both depend on it.
type RecordSet struct {
	Columns []string
	Rows    []Record
}

// HasColumn reports whether the record set carries the given column.
func (rs *RecordSet) HasColumn(name string) bool {
	for _, c := range rs.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Rename renames a column in the header and in every row. Renaming to a
// name that already exists would silently merge columns, so it is a no-op
// when the target is taken.
func (rs *RecordSet) Rename(from, to string) {
	if from == to || !rs.HasColumn(from) || rs.HasColumn(to) {
		return
	}
	for i, c := range rs.Columns {
		if c == from {
			rs.Columns[i] = to
			break
		}
	}
	for _, row := range rs.Rows {
		if v, ok := row[from]; ok {
			row[to] = v
			delete(row, from)
		}
	}
}

// EnsureColumn installs a nil-filled column when it is missing, so that a
// sheet with a renamed or deleted header degrades to null values instead of
// failing the run.
func (rs *RecordSet) EnsureColumn(name string) {
	if rs.HasColumn(name) {
		return
	}
	rs.Columns = append(rs.Columns, name)
	for _, row := range rs.Rows {
		row[name] = nil
	}
}

// Filter keeps only the rows for which keep returns true, preserving order.
func (rs *RecordSet) Filter(keep func(Record) bool) {
	out := rs.Rows[:0]
	for _, row := range rs.Rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	rs.Rows = out
}

// Len returns the number of rows.
func (rs *RecordSet) Len() int {
	return len(rs.Rows)
}
