package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/keyscout/keyscout/pkg/profile"
	"github.com/keyscout/keyscout/pkg/table"
)

// recordingReporter captures trace output for assertions.
type recordingReporter struct {
	banners  []string
	lines    []string
	sections []string
	traces   []string
}

func (r *recordingReporter) Banner(title string) {
	r.banners = append(r.banners, title)
}

func (r *recordingReporter) Linef(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Sectionf(format string, args ...any) {
	r.sections = append(r.sections, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Tracef(format string, args ...any) {
	r.traces = append(r.traces, fmt.Sprintf(format, args...))
}

func buildProfile(t *testing.T, tbl *table.Table) *profile.Profile {
	t.Helper()
	p, err := profile.Build(tbl)
	require.NoError(t, err)
	return p
}

// pairKeyTable has no unique single column; (a,b) is the only unique
// pair. Columns tie on ratio so the ranked order is a, b, c.
func pairKeyTable() *table.Table {
	return table.New("pairs", []string{"a", "b", "c"}, [][]string{
		{"a1", "b1", "c1"},
		{"a1", "b2", "c1"},
		{"a2", "b1", "c1"},
		{"a2", "b2", "c2"},
	})
}

// tripleKeyTable needs all three columns combined for uniqueness; every
// pair has a duplicate.
func tripleKeyTable() *table.Table {
	return table.New("triple", []string{"a", "b", "c"}, [][]string{
		{"0", "0", "0"},
		{"0", "0", "1"},
		{"0", "1", "0"},
		{"1", "0", "0"},
	})
}

// twoKeyTable has exactly two independent minimal keys, (a,b) and (c,d);
// every other pair and every single column has duplicates.
func twoKeyTable() *table.Table {
	return table.New("twokeys", []string{"a", "b", "c", "d"}, [][]string{
		{"a0", "b0", "c0", "d0"},
		{"a0", "b1", "c1", "d0"},
		{"a0", "b2", "c1", "d1"},
		{"a1", "b0", "c0", "d1"},
		{"a1", "b1", "c2", "d0"},
		{"a1", "b2", "c2", "d1"},
	})
}
