package search

import (
	"context"
	"fmt"
	"math/big"

	"go.uber.org/zap"
)

// runExhaustive is the brute-force fallback: it enumerates every
// k-combination of the ranked columns in lexicographic order and stops at
// the first unique one. Unlike the level-wise search it does not seek all
// minimal keys. The number of combinations per level is combinatorial, so
// the closed-form cost is reported before testing begins.
func (e *Engine) runExhaustive(ctx context.Context) ([][]string, error) {
	e.logger.Warn("running exhaustive strategy, this may take a long time",
		zap.String("table", e.tbl.Name()))

	cols := e.prof.RankedColumns()
	for k := 2; k <= e.opts.MaxKeyLength; k++ {
		if k > len(cols) {
			break
		}
		total := new(big.Int).Binomial(int64(len(cols)), int64(k))
		e.rep.Sectionf("testing all combinations of length %d (total: %s)", k, total)

		barTotal := len(cols) // placeholder when the count overflows int
		if total.IsInt64() && total.Int64() <= int64(1<<31-1) {
			barTotal = int(total.Int64())
		}
		bar := e.progress(barTotal, fmt.Sprintf("testing length %d", k))

		solution, err := e.testCombinations(ctx, cols, k, bar)
		bar.Finish()
		if err != nil {
			return nil, err
		}
		if solution != nil {
			return [][]string{solution}, nil
		}
	}
	return nil, nil
}

// testCombinations walks the k-combinations of cols in lexicographic
// index order and returns the first unique one, or nil.
func (e *Engine) testCombinations(ctx context.Context, cols []string, k int, bar Progress) ([]string, error) {
	n := len(cols)
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		if err := checkpoint(ctx); err != nil {
			return nil, err
		}

		cand := make([]string, k)
		for i, j := range idx {
			cand[i] = cols[j]
		}
		e.rep.Tracef("testing: %s", formatKey(cand))
		unique, err := e.isUnique(cand)
		if err != nil {
			return nil, err
		}
		if unique {
			e.rep.Tracef("found solution: %s", formatKey(cand))
			return cand, nil
		}
		bar.Add(1)

		// Advance to the next combination.
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return nil, nil
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
