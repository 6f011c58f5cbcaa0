package report

// Table is an ordered list of string rows under a header row.
// A table with a header and no rows carries no data.
type Table struct {
	header []string
	rows   [][]string
}

func NewTable(header ...string) *Table {
	return &Table{header: header}
}

// Append adds one row in discovery order.
func (t *Table) Append(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *Table) Header() []string {
	return t.header
}

// Rows returns the body rows, header excluded.
func (t *Table) Rows() [][]string {
	return t.rows
}

// Records returns the header followed by every row.
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.rows)+1)
	out = append(out, t.header)
	return append(out, t.rows...)
}

func (t *Table) HasData() bool {
	return t != nil && len(t.rows) > 0
}
