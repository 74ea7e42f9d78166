package search

import (
	"fmt"
	"sort"
	"strings"
)

// Strategy identifies one of the candidate-key search strategies. The set
// is closed: the orchestrator dispatches with an exhaustive switch rather
// than a lookup table, so an unknown value is a compile-time concern, not
// a silent no-op at run time.
type Strategy int

const (
	// StrategySingle marks the single-column short-circuit. It is the
	// outcome of profiling, not a schedulable strategy, and is rejected
	// by ParseStrategy.
	StrategySingle Strategy = iota
	StrategyFD
	StrategyLinear
	StrategySmart
	StrategyExhaustive
)

func (s Strategy) String() string {
	switch s {
	case StrategySingle:
		return "single-column"
	case StrategyFD:
		return "fd"
	case StrategyLinear:
		return "linear"
	case StrategySmart:
		return "smart"
	case StrategyExhaustive:
		return "exhaustive"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy converts a configuration token into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fd":
		return StrategyFD, nil
	case "linear":
		return StrategyLinear, nil
	case "smart":
		return StrategySmart, nil
	case "exhaustive":
		return StrategyExhaustive, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q", name)
	}
}

// DefaultOrder returns the strategy fallback order used when none is
// configured. The FD oracle runs first when available since it is
// typically the cheapest complete option.
func DefaultOrder(oracleAvailable bool) []Strategy {
	var order []Strategy
	if oracleAvailable {
		order = append(order, StrategyFD)
	}
	return append(order, StrategyLinear, StrategySmart)
}

// key is a candidate key: a sorted, duplicate-free set of column names.
type key []string

// newKey copies and canonicalizes a column set: sorted, duplicates
// removed. Internally generated candidates never carry duplicates, but
// oracle-supplied determinants may.
func newKey(cols []string) key {
	k := make(key, len(cols))
	copy(k, cols)
	sort.Strings(k)
	out := k[:0]
	for i, c := range k {
		if i == 0 || c != k[i-1] {
			out = append(out, c)
		}
	}
	return out
}

// id is a canonical identity string used for set membership and for the
// deterministic candidate ordering of the level-wise search.
func (k key) id() string {
	return strings.Join(k, "\x1f")
}

// union merges two keys into a new canonical key.
func (k key) union(other key) key {
	merged := make(map[string]struct{}, len(k)+len(other))
	for _, c := range k {
		merged[c] = struct{}{}
	}
	for _, c := range other {
		merged[c] = struct{}{}
	}
	out := make(key, 0, len(merged))
	for c := range merged {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// containsAll reports whether k is a superset of sub. Both must be sorted.
func (k key) containsAll(sub key) bool {
	i := 0
	for _, c := range k {
		if i == len(sub) {
			return true
		}
		if c == sub[i] {
			i++
		}
	}
	return i == len(sub)
}

// supersetOfAny reports whether cols contains any of the found solutions.
func supersetOfAny(cols key, solutions [][]string) bool {
	for _, sol := range solutions {
		if cols.containsAll(newKey(sol)) {
			return true
		}
	}
	return false
}

// formatKey renders a candidate for report trace lines.
func formatKey(cols []string) string {
	return "[" + strings.Join(cols, ", ") + "]"
}
