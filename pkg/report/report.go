// Package report renders the per-table analysis trace to a sink, one
// report file per input table, plus a machine-readable YAML summary.
package report

import (
	"fmt"
	"io"
	"strings"
)

// Report writes the human-readable trace of one table's analysis. It
// implements search.Reporter. Write errors are deliberately not
// propagated from every trace line; the final file close surfaces them.
type Report struct {
	w io.Writer
}

// New wraps a sink, typically the per-table report file.
func New(w io.Writer) *Report {
	return &Report{w: w}
}

// Banner opens a prominent section.
func (r *Report) Banner(title string) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(r.w, "%s\n%s\n%s\n\n", rule, title, rule)
}

// Linef writes a plain line.
func (r *Report) Linef(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

// Sectionf writes a level header within a strategy section.
func (r *Report) Sectionf(format string, args ...any) {
	fmt.Fprintf(r.w, "\n  >> "+format+" <<\n", args...)
}

// Tracef writes a per-candidate trace line.
func (r *Report) Tracef(format string, args ...any) {
	fmt.Fprintf(r.w, "    > "+format+"\n", args...)
}
