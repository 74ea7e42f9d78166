package search

import "context"

// runLinear grows a single prefix of the ranked columns, testing it after
// each append once it holds at least two columns. It is a cheap heuristic
// that works well when a few high-cardinality columns predict the key.
// The first satisfying prefix is returned as-is: no minimality check is
// performed, so the reported key may contain removable columns. That is
// the documented behavior of this strategy, not an oversight.
func (e *Engine) runLinear(ctx context.Context) ([][]string, error) {
	var prefix []string
	for _, col := range e.prof.RankedColumns() {
		prefix = append(prefix, col)
		if len(prefix) < 2 {
			continue
		}
		if len(prefix) > e.opts.MaxKeyLength {
			break
		}
		if err := checkpoint(ctx); err != nil {
			return nil, err
		}

		e.rep.Tracef("testing: %s", formatKey(prefix))
		unique, err := e.isUnique(prefix)
		if err != nil {
			return nil, err
		}
		if unique {
			e.rep.Tracef("found solution: %s", formatKey(prefix))
			solution := make([]string, len(prefix))
			copy(solution, prefix)
			return [][]string{solution}, nil
		}
	}
	return nil, nil
}
