package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/keyscout/keyscout/pkg/apperrors"
	"github.com/keyscout/keyscout/pkg/profile"
	"github.com/keyscout/keyscout/pkg/table"
)

// Reporter receives the human-readable trace of a search run. The report
// writer implements it; tests substitute a recording implementation.
type Reporter interface {
	// Banner opens a prominent section, e.g. the start of a strategy.
	Banner(title string)
	// Linef writes a plain report line.
	Linef(format string, args ...any)
	// Sectionf writes a level header within a strategy.
	Sectionf(format string, args ...any)
	// Tracef writes a per-candidate trace line.
	Tracef(format string, args ...any)
}

// NopReporter discards all trace output.
type NopReporter struct{}

func (NopReporter) Banner(string)           {}
func (NopReporter) Linef(string, ...any)    {}
func (NopReporter) Sectionf(string, ...any) {}
func (NopReporter) Tracef(string, ...any)   {}

// Progress renders candidate-test progress within one search level.
type Progress interface {
	Add(n int)
	Finish()
}

// ProgressFunc creates a Progress for a level of total candidates. A nil
// ProgressFunc disables progress rendering entirely.
type ProgressFunc func(total int, label string) Progress

// Options configures one search run. MaxKeyLength is a hard ceiling
// shared by every strategy in Order.
type Options struct {
	MaxKeyLength int
	Order        []Strategy

	// Oracle is the optional functional-dependency discovery engine.
	// When nil the FD strategy reports unavailability and is skipped.
	Oracle Oracle

	// NewProgress is optional; see ProgressFunc.
	NewProgress ProgressFunc
}

// Result is the successful outcome of a search: the strategy that
// produced the solution set and the minimal candidate keys it found.
// Column order within a key follows the producing strategy's enumeration
// order and is deterministic.
type Result struct {
	Strategy  Strategy
	Solutions [][]string
}

// Engine explores the space of column combinations of one table. It is a
// sequential batch computation: strategies run one at a time and candidate
// tests run in a fixed deterministic order, which both reproducible
// reports and superset pruning rely on.
type Engine struct {
	tbl    *table.Table
	prof   *profile.Profile
	opts   Options
	rep    Reporter
	logger *zap.Logger
}

// NewEngine creates a search engine over a loaded table and its profile.
func NewEngine(tbl *table.Table, prof *profile.Profile, opts Options, rep Reporter, logger *zap.Logger) *Engine {
	if rep == nil {
		rep = NopReporter{}
	}
	return &Engine{
		tbl:    tbl,
		prof:   prof,
		opts:   opts,
		rep:    rep,
		logger: logger.Named("search"),
	}
}

// Find runs the configured strategies in order and stops at the first
// non-empty solution set. A single individually-unique column short-circuits
// the combinatorial search entirely. When every strategy is exhausted the
// returned error wraps apperrors.ErrExhausted; a cancelled context wraps
// ctx.Err().
func (e *Engine) Find(ctx context.Context) (*Result, error) {
	if col := e.prof.UniqueColumn; col != "" {
		e.logger.Info("single column is already a unique key, skipping combination search",
			zap.String("table", e.tbl.Name()),
			zap.String("column", col))
		return &Result{Strategy: StrategySingle, Solutions: [][]string{{col}}}, nil
	}

	for _, strategy := range e.opts.Order {
		e.rep.Banner(fmt.Sprintf("searching for unique keys (strategy: %s)", strategy))

		var (
			solutions [][]string
			err       error
		)
		switch strategy {
		case StrategyFD:
			solutions, err = e.runFD(ctx)
		case StrategyLinear:
			solutions, err = e.runLinear(ctx)
		case StrategySmart:
			solutions, err = e.runSmart(ctx)
		case StrategyExhaustive:
			solutions, err = e.runExhaustive(ctx)
		case StrategySingle:
			// Not schedulable; profiling already handled it above.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", strategy, err)
		}

		if len(solutions) > 0 {
			e.logger.Info("found minimal unique keys",
				zap.String("table", e.tbl.Name()),
				zap.String("strategy", strategy.String()),
				zap.Int("count", len(solutions)))
			return &Result{Strategy: strategy, Solutions: solutions}, nil
		}

		e.logger.Info("strategy found no unique key",
			zap.String("table", e.tbl.Name()),
			zap.String("strategy", strategy.String()))
		e.rep.Linef("strategy %s found no unique key within max length %d",
			strategy, e.opts.MaxKeyLength)
	}

	return nil, fmt.Errorf("all strategies tried for %s: %w", e.tbl.Name(), apperrors.ErrExhausted)
}

// checkpoint is the cooperative cancellation point between candidate tests.
func checkpoint(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// isUnique tests whether the given columns form a candidate key: the
// number of distinct value tuples equals the row count. Missing values
// compare as literal values, never as wildcards.
func (e *Engine) isUnique(cols []string) (bool, error) {
	distinct, err := e.tbl.DistinctRowCount(cols)
	if err != nil {
		return false, err
	}
	return distinct == e.tbl.RowCount(), nil
}

// progress returns a Progress for a level, or a no-op one.
func (e *Engine) progress(total int, label string) Progress {
	if e.opts.NewProgress == nil {
		return nopProgress{}
	}
	return e.opts.NewProgress(total, label)
}

type nopProgress struct{}

func (nopProgress) Add(int) {}
func (nopProgress) Finish() {}
