// Package table implements a growable in-memory row-major table, used
// for frequency-analysis result tables. Growth uses a doubling-capacity
// accumulation strategy over a slice of rows.
package table

import "fmt"

// Table is a row-major (headers, rows) store with doubling capacity.
type Table struct {
	Title   string
	Headers []string
	rows    [][]string
	cap     int
}

const initialCapacity = 16

// New creates an empty Table with the given title and headers.
func New(title string, headers []string) *Table {
	return &Table{
		Title:   title,
		Headers: append([]string(nil), headers...),
		rows:    make([][]string, 0, initialCapacity),
		cap:     initialCapacity,
	}
}

// ColCount returns the number of columns.
func (t *Table) ColCount() int { return len(t.Headers) }

// RowCount returns the number of rows currently stored.
func (t *Table) RowCount() int { return len(t.rows) }

// AddRow appends a row, copying each cell (nil cells become "") and
// doubling capacity when full. If cells has the wrong column count, the
// row is rejected as an all-or-nothing append; no partial state is
// retained.
func (t *Table) AddRow(cells []string) error {
	if len(cells) != len(t.Headers) {
		return fmt.Errorf("table: row has %d cells, want %d", len(cells), len(t.Headers))
	}
	if len(t.rows) == t.cap {
		t.cap *= 2
	}
	row := make([]string, len(cells))
	for i, c := range cells {
		row[i] = c // already "" for absent cells by caller convention
	}
	t.rows = append(t.rows, row)
	return nil
}

// Cell returns the contents of (row, col), or "" if out of range.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.rows) || col < 0 || col >= len(t.Headers) {
		return ""
	}
	return t.rows[row][col]
}

// Header returns the column name at col, or "" if out of range.
func (t *Table) Header(col int) string {
	if col < 0 || col >= len(t.Headers) {
		return ""
	}
	return t.Headers[col]
}
