// Package runner drives the batch analysis: it scans a directory for
// delimited files, runs the candidate-key search on each, and writes one
// report and one summary per file. Failures are isolated per file so a
// bad export never aborts the whole scan.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/keyscout/keyscout/pkg/apperrors"
	"github.com/keyscout/keyscout/pkg/config"
	"github.com/keyscout/keyscout/pkg/profile"
	"github.com/keyscout/keyscout/pkg/progress"
	"github.com/keyscout/keyscout/pkg/report"
	"github.com/keyscout/keyscout/pkg/search"
	"github.com/keyscout/keyscout/pkg/table"
)

// Runner analyzes every eligible file under the configured directory.
type Runner struct {
	cfg     *config.Config
	oracle  search.Oracle
	order   []search.Strategy
	exclude glob.Glob
	logger  *zap.Logger
}

// New builds a runner. The oracle may be nil; the default strategy order
// then leaves out the FD strategy. Exclusion patterns are matched
// case-insensitively against the file name.
func New(cfg *config.Config, oracle search.Oracle, logger *zap.Logger) (*Runner, error) {
	var exclude glob.Glob
	if cfg.ExcludeGlob != "" {
		g, err := glob.Compile(strings.ToLower(cfg.ExcludeGlob))
		if err != nil {
			return nil, fmt.Errorf("invalid exclude_glob %q: %w", cfg.ExcludeGlob, err)
		}
		exclude = g
	}

	order := cfg.Strategies
	if len(order) == 0 {
		order = search.DefaultOrder(oracle != nil)
	}

	return &Runner{
		cfg:     cfg,
		oracle:  oracle,
		order:   order,
		exclude: exclude,
		logger:  logger.Named("runner"),
	}, nil
}

// ScanAndProcess analyzes all eligible files in name order. Per-file
// failures are logged and skipped; only cancellation stops the scan.
func (r *Runner) ScanAndProcess(ctx context.Context) error {
	entries, err := os.ReadDir(r.cfg.Dir)
	if err != nil {
		return fmt.Errorf("failed to scan directory %s: %w", r.cfg.Dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if !strings.HasSuffix(name, ".csv") {
			continue
		}
		if r.exclude != nil && r.exclude.Match(name) {
			r.logger.Info("skipping excluded file", zap.String("file", entry.Name()))
			continue
		}
		files = append(files, entry.Name())
	}

	if len(files) == 0 {
		r.logger.Warn("no eligible csv files found", zap.String("dir", r.cfg.Dir))
		return nil
	}
	r.logger.Info("found files to process",
		zap.Int("count", len(files)),
		zap.Strings("files", files))

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(r.cfg.Dir, name)
		if err := r.ProcessFile(ctx, path); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			r.logger.Error("file analysis failed",
				zap.String("file", name),
				zap.Error(err))
		}
	}

	r.logger.Info("all files analyzed")
	return nil
}

// ProcessFile loads one file, runs the search, and writes its report and
// summary. The returned error covers load/profile failures and
// cancellation; strategy exhaustion is a normal, fully reported outcome.
func (r *Runner) ProcessFile(ctx context.Context, path string) error {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	reportPath := base + "_uniquekey_report.txt"
	summaryPath := base + "_uniquekey_summary.yaml"

	r.logger.Info("processing file",
		zap.String("file", path),
		zap.String("report", reportPath))

	f, err := os.Create(reportPath)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", reportPath, err)
	}
	defer f.Close()
	rep := report.New(f)

	summary := &report.Summary{
		RunID:     uuid.NewString(),
		File:      filepath.Base(path),
		StartedAt: time.Now(),
	}
	defer func() {
		summary.DurationMS = time.Since(summary.StartedAt).Milliseconds()
		if err := report.WriteSummary(summaryPath, summary); err != nil {
			r.logger.Error("failed to write summary", zap.Error(err))
		}
	}()

	rep.Linef("  (reading file...)")
	tbl, err := table.LoadCSV(path, r.logger)
	if err != nil {
		rep.Linef("failed to read file: %v", err)
		summary.Error = err.Error()
		return err
	}
	rep.Linef("total rows: %d", tbl.RowCount())
	rep.Linef("")

	prof, err := profile.Build(tbl)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmptyTable) {
			rep.Linef("file is empty, nothing to analyze")
		} else {
			rep.Linef("failed to profile file: %v", err)
		}
		summary.Error = err.Error()
		return err
	}
	summary.RowCount = prof.RowCount
	summary.Columns = prof.Ranked

	rep.Linef("--- step 1: columns ranked by uniqueness ratio ---")
	rep.Linef("%s", strings.Join(prof.RankedColumns(), ", "))
	rep.Linef("")
	rep.Linef("--- step 2: single-column check ---")
	if prof.UniqueColumn == "" {
		rep.Linef("non-unique single columns: %s", strings.Join(prof.NonUnique, ", "))
		rep.Linef("no single column is a unique key, starting combination search")
		rep.Linef("")
	}

	opts := search.Options{
		MaxKeyLength: r.cfg.MaxKeyLength,
		Order:        r.order,
		Oracle:       r.oracle,
	}
	if r.cfg.Progress {
		opts.NewProgress = progress.Bar
	}

	engine := search.NewEngine(tbl, prof, opts, rep, r.logger)
	result, err := engine.Find(ctx)
	switch {
	case err == nil:
		if result.Strategy == search.StrategySingle {
			rep.Linef("column %q is unique on its own, no combinations needed", result.Solutions[0][0])
		}
		rep.Linef("")
		rep.Linef("success: found %d minimal unique keys: %s",
			len(result.Solutions), formatSolutions(result.Solutions))
		summary.Found = true
		summary.Strategy = result.Strategy.String()
		summary.Solutions = result.Solutions
		return nil
	case errors.Is(err, apperrors.ErrExhausted):
		rep.Linef("")
		rep.Linef("no strategy found a unique key within max length %d", r.cfg.MaxKeyLength)
		// Exhaustion is a normal outcome, not a processing failure.
		return nil
	default:
		summary.Error = err.Error()
		return err
	}
}

func formatSolutions(solutions [][]string) string {
	parts := make([]string, len(solutions))
	for i, sol := range solutions {
		parts[i] = "[" + strings.Join(sol, ", ") + "]"
	}
	return "[" + strings.Join(parts, " ") + "]"
}
