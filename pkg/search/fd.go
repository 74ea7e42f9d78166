package search

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/keyscout/keyscout/pkg/table"
)

// Dependency is one functional dependency reported by the oracle: the
// determinant column set's values determine the dependent columns' values
// on every row.
type Dependency struct {
	Determinant []string
	Dependents  []string
}

// Oracle is an external functional-dependency discovery engine, consumed
// opaquely. Implementations may fail for any reason; the FD strategy
// treats every failure as a non-fatal skip.
type Oracle interface {
	Discover(ctx context.Context, t *table.Table, maxDeterminantSize int) ([]Dependency, error)
}

// runFD delegates key discovery to the oracle. A determinant qualifies as
// a candidate key iff it determines every column outside itself. The
// qualifying determinants are sorted by size and filtered greedily so no
// kept key contains an earlier-kept one, which guarantees minimality of
// the returned set.
func (e *Engine) runFD(ctx context.Context) ([][]string, error) {
	if e.opts.Oracle == nil {
		e.logger.Warn("fd strategy scheduled without an oracle, skipping")
		e.rep.Linef("functional-dependency oracle is not available, strategy skipped")
		return nil, nil
	}

	e.logger.Info("delegating to functional-dependency oracle",
		zap.String("table", e.tbl.Name()))
	deps, err := e.opts.Oracle.Discover(ctx, e.tbl, e.opts.MaxKeyLength)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		e.logger.Error("functional-dependency oracle failed", zap.Error(err))
		e.rep.Linef("functional-dependency oracle failed: %v", err)
		return nil, nil
	}

	all := make(map[string]struct{}, len(e.tbl.Columns()))
	for _, col := range e.tbl.Columns() {
		all[col] = struct{}{}
	}

	var qualifying []key
	for _, dep := range deps {
		det := newKey(dep.Determinant)
		if len(det) > e.opts.MaxKeyLength {
			continue
		}
		if determinesAll(det, dep.Dependents, all) {
			qualifying = append(qualifying, det)
		}
	}

	sort.Slice(qualifying, func(i, j int) bool {
		if len(qualifying[i]) != len(qualifying[j]) {
			return len(qualifying[i]) < len(qualifying[j])
		}
		return qualifying[i].id() < qualifying[j].id()
	})

	var minimal [][]string
	for _, det := range qualifying {
		if supersetOfAny(det, minimal) {
			e.rep.Tracef("skipped (superset of a known solution): %s", formatKey(det))
			continue
		}
		e.rep.Tracef("found solution: %s", formatKey(det))
		minimal = append(minimal, det)
	}
	return minimal, nil
}

// determinesAll reports whether the dependent set equals exactly the
// table columns outside the determinant, i.e. the determinant
// functionally determines the rest of the row.
func determinesAll(determinant key, dependents []string, all map[string]struct{}) bool {
	inDeterminant := make(map[string]struct{}, len(determinant))
	for _, c := range determinant {
		if _, ok := all[c]; !ok {
			return false
		}
		inDeterminant[c] = struct{}{}
	}

	depSet := make(map[string]struct{}, len(dependents))
	for _, c := range dependents {
		if _, ok := all[c]; !ok {
			return false
		}
		if _, ok := inDeterminant[c]; ok {
			return false
		}
		depSet[c] = struct{}{}
	}
	return len(depSet) == len(all)-len(inDeterminant)
}
