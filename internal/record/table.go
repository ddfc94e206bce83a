package record

// Row is one table row keyed by column name. Missing columns read as empty.
type Row map[string]string

// Table is an ordered set of columns over rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable returns an empty table with the given columns.
func NewTable(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	return indexOf(t.Columns, name) != -1
}

// AddColumn appends name (unless present) and sets it to value on every row.
func (t *Table) AddColumn(name, value string) {
	t.ensureColumn(name)
	for _, row := range t.Rows {
		row[name] = value
	}
}

// DropColumn removes name from the columns and from every row.
func (t *Table) DropColumn(name string) {
	i := indexOf(t.Columns, name)
	if i == -1 {
		return
	}
	t.Columns = append(t.Columns[:i:i], t.Columns[i+1:]...)
	for _, row := range t.Rows {
		delete(row, name)
	}
}

// MoveToFront reorders the columns so that front comes first, in the given order,
// followed by every other column in its current relative order. Names in front that
// are not columns are added.
func (t *Table) MoveToFront(front ...string) {
	columns := make([]string, 0, len(t.Columns)+len(front))
	columns = append(columns, front...)
	for _, c := range t.Columns {
		if indexOf(front, c) == -1 {
			columns = append(columns, c)
		}
	}
	t.Columns = columns
}

// Values returns row's cells in column order.
func (t *Table) Values(row Row) []string {
	values := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		values[i] = row[c]
	}
	return values
}

// Filter returns a table with the same columns holding the rows keep accepts.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := NewTable(t.Columns...)
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Concat appends tables in order. Columns are the union of all columns in
// first-seen order.
func Concat(tables ...*Table) *Table {
	out := &Table{}
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, c := range t.Columns {
			out.ensureColumn(c)
		}
		out.Rows = append(out.Rows, t.Rows...)
	}
	return out
}

func (t *Table) ensureColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

func indexOf(columns []string, name string) int {
	for i, c := range columns {
		if c == name {
			return i
		}
	}
	return -1
}
