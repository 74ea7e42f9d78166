package report

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/keyscout/keyscout/pkg/profile"
)

// Summary is the machine-readable counterpart of the text report. One
// summary file is written per input table so downstream tooling does not
// have to scrape the trace.
type Summary struct {
	RunID      string               `yaml:"run_id"`
	File       string               `yaml:"file"`
	StartedAt  time.Time            `yaml:"started_at"`
	DurationMS int64                `yaml:"duration_ms"`
	RowCount   int                  `yaml:"row_count"`
	Columns    []profile.ColumnRank `yaml:"columns"`
	Found      bool                 `yaml:"found"`
	Strategy   string               `yaml:"strategy,omitempty"`
	Solutions  [][]string           `yaml:"solutions,omitempty"`
	Error      string               `yaml:"error,omitempty"`
}

// WriteSummary marshals the summary to path as YAML.
func WriteSummary(path string, s *Summary) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write summary %s: %w", path, err)
	}
	return nil
}
