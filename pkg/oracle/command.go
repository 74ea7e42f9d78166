// Package oracle adapts an external functional-dependency discovery
// engine to the search.Oracle interface. The engine is an arbitrary
// executable speaking a small pipe protocol: the table is written to its
// stdin as CSV, the determinant size ceiling is passed as a flag, and the
// discovered dependencies come back as JSON on stdout:
//
//	[{"determinant": ["a", "b"], "dependents": ["c"]}, ...]
package oracle

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"

	"go.uber.org/zap"

	"github.com/keyscout/keyscout/pkg/apperrors"
	"github.com/keyscout/keyscout/pkg/search"
	"github.com/keyscout/keyscout/pkg/table"
)

// CommandOracle runs a functional-dependency discovery executable.
type CommandOracle struct {
	command string
	path    string // resolved at construction; empty when not found
	logger  *zap.Logger
}

// NewCommandOracle resolves the configured command on PATH once. A
// missing command is not an error here: availability is a capability
// checked by the caller when building the strategy order.
func NewCommandOracle(command string, logger *zap.Logger) *CommandOracle {
	o := &CommandOracle{command: command, logger: logger.Named("oracle")}
	if command == "" {
		return o
	}
	path, err := exec.LookPath(command)
	if err != nil {
		logger.Warn("functional-dependency oracle not found on PATH",
			zap.String("command", command))
		return o
	}
	o.path = path
	return o
}

// Available reports whether the oracle executable was found.
func (o *CommandOracle) Available() bool {
	return o.path != ""
}

// Discover feeds the table to the oracle process and decodes its output.
func (o *CommandOracle) Discover(ctx context.Context, t *table.Table, maxDeterminantSize int) ([]search.Dependency, error) {
	if !o.Available() {
		return nil, fmt.Errorf("%w: %q not on PATH", apperrors.ErrOracleUnavailable, o.command)
	}

	var stdin bytes.Buffer
	w := csv.NewWriter(&stdin)
	if err := w.Write(t.Columns()); err != nil {
		return nil, fmt.Errorf("failed to encode table for oracle: %w", err)
	}
	for i := 0; i < t.RowCount(); i++ {
		if err := w.Write(t.Row(i)); err != nil {
			return nil, fmt.Errorf("failed to encode table for oracle: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to encode table for oracle: %w", err)
	}

	cmd := exec.CommandContext(ctx, o.path, "--max-determinant", strconv.Itoa(maxDeterminantSize))
	cmd.Stdin = &stdin
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	o.logger.Info("running functional-dependency oracle",
		zap.String("command", o.path),
		zap.String("table", t.Name()),
		zap.Int("max_determinant", maxDeterminantSize))
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("oracle %q failed: %w (stderr: %s)",
			o.command, err, stderr.String())
	}

	var raw []struct {
		Determinant []string `json:"determinant"`
		Dependents  []string `json:"dependents"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &raw); err != nil {
		return nil, fmt.Errorf("oracle %q produced invalid output: %w", o.command, err)
	}

	deps := make([]search.Dependency, len(raw))
	for i, r := range raw {
		deps[i] = search.Dependency{Determinant: r.Determinant, Dependents: r.Dependents}
	}
	return deps, nil
}
