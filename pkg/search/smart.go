package search

import (
	"context"
	"fmt"
	"sort"
)

// runSmart is the Apriori-style level-wise search. It finds every minimal
// unique key up to the key length ceiling. Level k candidates are built
// only from level k-1 sets known to be non-unique: any subset of a true
// minimal key must itself be non-unique, otherwise that subset would have
// been reported at an earlier level. Candidates that contain an
// already-found solution are pruned without testing.
func (e *Engine) runSmart(ctx context.Context) ([][]string, error) {
	level := make(map[string]key, len(e.prof.NonUnique))
	for _, col := range e.prof.NonUnique {
		k := newKey([]string{col})
		level[k.id()] = k
	}

	var solutions [][]string
	for k := 2; k <= e.opts.MaxKeyLength; k++ {
		e.rep.Sectionf("generating and testing candidates of length %d", k)

		candidates := generateCandidates(level, k)
		if len(candidates) == 0 {
			e.rep.Tracef("no further candidates can be generated, search ends")
			break
		}

		next := make(map[string]key)
		bar := e.progress(len(candidates), fmt.Sprintf("testing length %d", k))
		for _, cand := range candidates {
			if err := checkpoint(ctx); err != nil {
				bar.Finish()
				return nil, err
			}
			if supersetOfAny(cand, solutions) {
				e.rep.Tracef("skipped (superset of a known solution): %s", formatKey(cand))
				bar.Add(1)
				continue
			}

			e.rep.Tracef("testing: %s", formatKey(cand))
			unique, err := e.isUnique(cand)
			if err != nil {
				bar.Finish()
				return nil, err
			}
			if unique {
				solutions = append(solutions, cand)
				e.rep.Tracef("found solution: %s", formatKey(cand))
			} else {
				next[cand.id()] = cand
			}
			bar.Add(1)
		}
		bar.Finish()

		if len(next) == 0 {
			e.rep.Tracef("no non-unique candidates left to extend, search ends")
			break
		}
		level = next
	}

	return solutions, nil
}

// generateCandidates unions every ordered pair of distinct level-(k-1)
// sets whose union has exactly k columns. The strict ordering of the pair
// enumeration avoids generating the same union twice; the size filter
// discards unions that skipped a level. The result is sorted by the
// candidates' column-name sequences so tests run in a fixed order.
func generateCandidates(level map[string]key, k int) []key {
	seeds := make([]key, 0, len(level))
	for _, s := range level {
		seeds = append(seeds, s)
	}
	sort.Slice(seeds, func(i, j int) bool { return seeds[i].id() < seeds[j].id() })

	unions := make(map[string]key)
	for i, s1 := range seeds {
		for _, s2 := range seeds[i+1:] {
			u := s1.union(s2)
			if len(u) == k {
				unions[u.id()] = u
			}
		}
	}

	candidates := make([]key, 0, len(unions))
	for _, u := range unions {
		candidates = append(candidates, u)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].id() < candidates[j].id() })
	return candidates
}
