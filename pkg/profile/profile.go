package profile

import (
	"fmt"
	"sort"

	"github.com/keyscout/keyscout/pkg/apperrors"
	"github.com/keyscout/keyscout/pkg/table"
)

// ColumnRank holds the standalone uniqueness statistics of one column.
type ColumnRank struct {
	Column        string  `yaml:"column"`
	DistinctCount int     `yaml:"distinct_count"`
	Ratio         float64 `yaml:"uniqueness_ratio"`
}

// Profile is the per-table column ranking shared read-only by every
// strategy attempted on that table.
type Profile struct {
	// Ranked lists all columns by descending uniqueness ratio. Ties keep
	// the original column order (stable sort).
	Ranked []ColumnRank

	// UniqueColumn is the first column in ranked order whose distinct
	// count equals the row count, or empty when no single column is
	// unique on its own. When set, the search short-circuits and the
	// column is the sole solution.
	UniqueColumn string

	// NonUnique holds the columns checked before any unique single was
	// found, in ranked order. When UniqueColumn is empty it covers every
	// column and seeds level 1 of the level-wise search.
	NonUnique []string

	RowCount int
}

// Build ranks the table's columns by uniqueness ratio and checks for a
// single-column key. A table with zero rows cannot be profiled.
func Build(t *table.Table) (*Profile, error) {
	rowCount := t.RowCount()
	if rowCount == 0 {
		return nil, fmt.Errorf("cannot profile %s: %w", t.Name(), apperrors.ErrEmptyTable)
	}

	ranked := make([]ColumnRank, 0, len(t.Columns()))
	for _, col := range t.Columns() {
		distinct, err := t.DistinctCount(col)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, ColumnRank{
			Column:        col,
			DistinctCount: distinct,
			Ratio:         float64(distinct) / float64(rowCount),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Ratio > ranked[j].Ratio
	})

	p := &Profile{Ranked: ranked, RowCount: rowCount}
	for _, r := range ranked {
		if r.DistinctCount == rowCount {
			p.UniqueColumn = r.Column
			break
		}
		p.NonUnique = append(p.NonUnique, r.Column)
	}
	return p, nil
}

// RankedColumns returns just the column names in ranked order.
func (p *Profile) RankedColumns() []string {
	cols := make([]string, len(p.Ranked))
	for i, r := range p.Ranked {
		cols[i] = r.Column
	}
	return cols
}
