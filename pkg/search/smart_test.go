package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSmartFindsPairKey(t *testing.T) {
	tbl := pairKeyTable()
	rep := &recordingReporter{}
	e := NewEngine(tbl, buildProfile(t, tbl), Options{MaxKeyLength: 5}, rep, zap.NewNop())

	solutions, err := e.runSmart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}}, solutions)
}

func TestSmartFindsTripleKeyAfterAllPairsFail(t *testing.T) {
	tbl := tripleKeyTable()
	rep := &recordingReporter{}
	e := NewEngine(tbl, buildProfile(t, tbl), Options{MaxKeyLength: 5}, rep, zap.NewNop())

	solutions, err := e.runSmart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b", "c"}}, solutions)

	// All three pairs must have been tested and failed before level 3.
	assert.Contains(t, rep.traces, "testing: [a, b]")
	assert.Contains(t, rep.traces, "testing: [a, c]")
	assert.Contains(t, rep.traces, "testing: [b, c]")
}

func TestSmartFindsAllMinimalKeys(t *testing.T) {
	tbl := twoKeyTable()
	rep := &recordingReporter{}
	e := NewEngine(tbl, buildProfile(t, tbl), Options{MaxKeyLength: 5}, rep, zap.NewNop())

	solutions, err := e.runSmart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, solutions)
}

func TestSmartNeverTestsSupersetOfSolution(t *testing.T) {
	tbl := twoKeyTable()
	rep := &recordingReporter{}
	e := NewEngine(tbl, buildProfile(t, tbl), Options{MaxKeyLength: 5}, rep, zap.NewNop())

	solutions, err := e.runSmart(context.Background())
	require.NoError(t, err)
	require.Len(t, solutions, 2)

	// Once (a,b) and (c,d) are known, every size-3 candidate contains
	// one of them and must be pruned, not tested.
	assert.NotContains(t, rep.traces, "testing: [a, b, c]")
	assert.NotContains(t, rep.traces, "testing: [a, b, d]")
	assert.NotContains(t, rep.traces, "testing: [a, c, d]")
	assert.NotContains(t, rep.traces, "testing: [b, c, d]")
	assert.Contains(t, rep.traces, "skipped (superset of a known solution): [a, b, c]")
}

func TestSmartMinimality(t *testing.T) {
	tbl := twoKeyTable()
	e := NewEngine(tbl, buildProfile(t, tbl), Options{MaxKeyLength: 5}, NopReporter{}, zap.NewNop())

	solutions, err := e.runSmart(context.Background())
	require.NoError(t, err)

	for _, sol := range solutions {
		// No proper subset of a reported key may be unique.
		for drop := range sol {
			subset := make([]string, 0, len(sol)-1)
			subset = append(subset, sol[:drop]...)
			subset = append(subset, sol[drop+1:]...)
			unique, err := e.isUnique(subset)
			require.NoError(t, err)
			assert.False(t, unique, "subset %v of solution %v must not be unique", subset, sol)
		}
		// No reported key may contain another.
		for _, other := range solutions {
			if len(other) < len(sol) {
				assert.False(t, newKey(sol).containsAll(newKey(other)))
			}
		}
	}
}

func TestSmartDeterministic(t *testing.T) {
	run := func() ([][]string, []string) {
		tbl := twoKeyTable()
		rep := &recordingReporter{}
		e := NewEngine(tbl, buildProfile(t, tbl), Options{MaxKeyLength: 5}, rep, zap.NewNop())
		solutions, err := e.runSmart(context.Background())
		require.NoError(t, err)
		return solutions, rep.traces
	}

	solutions1, traces1 := run()
	solutions2, traces2 := run()
	assert.Equal(t, solutions1, solutions2)
	assert.Equal(t, traces1, traces2, "candidate test order must be reproducible")
}

func TestSmartRespectsKeyLengthCeiling(t *testing.T) {
	tbl := tripleKeyTable()
	rep := &recordingReporter{}
	e := NewEngine(tbl, buildProfile(t, tbl), Options{MaxKeyLength: 2}, rep, zap.NewNop())

	solutions, err := e.runSmart(context.Background())
	require.NoError(t, err)
	assert.Empty(t, solutions)
	assert.NotContains(t, rep.traces, "testing: [a, b, c]")
}

func TestSmartCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tbl := tripleKeyTable()
	e := NewEngine(tbl, buildProfile(t, tbl), Options{MaxKeyLength: 5}, NopReporter{}, zap.NewNop())

	_, err := e.runSmart(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGenerateCandidatesUnionSizeFilter(t *testing.T) {
	level := map[string]key{}
	for _, cols := range [][]string{{"a", "b"}, {"c", "d"}, {"a", "c"}} {
		k := newKey(cols)
		level[k.id()] = k
	}

	candidates := generateCandidates(level, 3)

	// {a,b} ∪ {c,d} has four columns and must be filtered out.
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		require.Len(t, c, 3)
		ids[i] = c.id()
	}
	assert.Equal(t, []string{"a\x1fb\x1fc", "a\x1fc\x1fd"}, ids)
}
