package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/keyscout/keyscout/pkg/apperrors"
)

// Table is an immutable in-memory view of one delimited file.
// All cells are strings; a missing cell is the empty string, which
// participates in distinct-count comparisons as a literal value rather
// than being skipped.
type Table struct {
	name    string
	columns []string
	index   map[string]int
	rows    [][]string

	// distinct caches per-column distinct counts; the table is read-only
	// after load and the profiler asks for each column exactly once, but
	// strategies may ask again for report lines.
	distinct map[string]int
}

// New builds a table from a header and rows. Every row must already be
// aligned to the header (the CSV loader pads or truncates ragged rows).
func New(name string, columns []string, rows [][]string) *Table {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		index[col] = i
	}
	return &Table{
		name:     name,
		columns:  columns,
		index:    index,
		rows:     rows,
		distinct: make(map[string]int, len(columns)),
	}
}

// Name returns the table name (the source file base name).
func (t *Table) Name() string {
	return t.name
}

// Columns returns column names in original file order.
func (t *Table) Columns() []string {
	return t.columns
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// Row returns the values of row i aligned to Columns.
func (t *Table) Row(i int) []string {
	return t.rows[i]
}

// DistinctCount returns the number of distinct values in a single column.
func (t *Table) DistinctCount(column string) (int, error) {
	if n, ok := t.distinct[column]; ok {
		return n, nil
	}
	idx, ok := t.index[column]
	if !ok {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrUnknownColumn, column)
	}
	seen := make(map[string]struct{}, len(t.rows))
	for _, row := range t.rows {
		seen[row[idx]] = struct{}{}
	}
	t.distinct[column] = len(seen)
	return len(seen), nil
}

// DistinctRowCount returns the number of distinct value tuples across the
// given columns over all rows. Tuples are compared field-by-field, so
// ("ab","c") and ("a","bc") are different tuples.
func (t *Table) DistinctRowCount(columns []string) (int, error) {
	indices := make([]int, len(columns))
	for i, col := range columns {
		idx, ok := t.index[col]
		if !ok {
			return 0, fmt.Errorf("%w: %q", apperrors.ErrUnknownColumn, col)
		}
		indices[i] = idx
	}

	seen := make(map[string]struct{}, len(t.rows))
	var b strings.Builder
	for _, row := range t.rows {
		b.Reset()
		for _, idx := range indices {
			cell := row[idx]
			// Length-prefix each field so tuple boundaries survive
			// concatenation.
			b.WriteString(strconv.Itoa(len(cell)))
			b.WriteByte(':')
			b.WriteString(cell)
		}
		seen[b.String()] = struct{}{}
	}
	return len(seen), nil
}
