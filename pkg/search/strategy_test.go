package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want Strategy
	}{
		{"fd", StrategyFD},
		{"linear", StrategyLinear},
		{"smart", StrategySmart},
		{"exhaustive", StrategyExhaustive},
		{" SMART ", StrategySmart},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseStrategy("super-smart")
	require.Error(t, err)
	_, err = ParseStrategy("single-column")
	require.Error(t, err, "the short-circuit outcome is not schedulable")
}

func TestDefaultOrder(t *testing.T) {
	assert.Equal(t, []Strategy{StrategyLinear, StrategySmart}, DefaultOrder(false))
	assert.Equal(t, []Strategy{StrategyFD, StrategyLinear, StrategySmart}, DefaultOrder(true))
}

func TestKeyCanonicalization(t *testing.T) {
	k := newKey([]string{"b", "a", "b"})
	assert.Equal(t, key{"a", "b"}, k)
	assert.Equal(t, "a\x1fb", k.id())
}

func TestKeyUnion(t *testing.T) {
	u := newKey([]string{"a", "c"}).union(newKey([]string{"b", "c"}))
	assert.Equal(t, key{"a", "b", "c"}, u)
}

func TestKeyContainsAll(t *testing.T) {
	abc := newKey([]string{"a", "b", "c"})
	assert.True(t, abc.containsAll(newKey([]string{"a", "c"})))
	assert.True(t, abc.containsAll(newKey([]string{"a", "b", "c"})))
	assert.False(t, abc.containsAll(newKey([]string{"a", "d"})))
	assert.False(t, newKey([]string{"a"}).containsAll(abc))
}

func TestDeterminesAll(t *testing.T) {
	all := map[string]struct{}{"a": {}, "b": {}, "c": {}}

	assert.True(t, determinesAll(newKey([]string{"a"}), []string{"b", "c"}, all))
	assert.False(t, determinesAll(newKey([]string{"a"}), []string{"b"}, all))
	assert.False(t, determinesAll(newKey([]string{"a"}), []string{"a", "b", "c"}, all),
		"a dependent inside the determinant disqualifies")
	assert.False(t, determinesAll(newKey([]string{"a"}), []string{"b", "x"}, all),
		"unknown dependent column disqualifies")
	assert.True(t, determinesAll(newKey([]string{"a", "b"}), []string{"c", "c"}, all),
		"duplicate dependents collapse")
}
