package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"hedgecli/internal/timeseries"
)

// Config holds the tunable parameters of one analysis run.
type Config struct {
	GapToleranceDays int   // spacing above which a gap warning fires
	CorrWindows      []int // rolling correlation window widths, in months
	BetaWindow       int   // rolling beta window width, in months
}

// DefaultConfig mirrors the study's published parameters: a ~1.6 month
// gap tolerance, 12 and 24 month rolling correlations, 12 month beta.
func DefaultConfig() Config {
	return Config{
		GapToleranceDays: DefaultGapToleranceDays,
		CorrWindows:      []int{12, 24},
		BetaWindow:       12,
	}
}

// Analyzer runs the full hedge analysis pipeline.
type Analyzer struct {
	cfg    Config
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer with the given configuration.
func NewAnalyzer(cfg Config, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.GapToleranceDays <= 0 {
		cfg.GapToleranceDays = DefaultGapToleranceDays
	}
	if len(cfg.CorrWindows) == 0 {
		cfg.CorrWindows = []int{12, 24}
	}
	if cfg.BetaWindow == 0 {
		cfg.BetaWindow = 12
	}
	return &Analyzer{cfg: cfg, logger: logger}
}

// Run executes the pipeline: merge, returns, whole-sample statistics,
// rolling statistics. Structural failures (no common time axis, too few
// observations for the whole-sample fit) abort the run; gap warnings and
// skipped rolling widths are logged and carried in the result instead.
func (a *Analyzer) Run(ctx context.Context, prices, index []timeseries.Observation) (*Result, error) {
	a.logger.InfoContext(ctx, "starting hedge analysis",
		"price_observations", len(prices),
		"index_observations", len(index),
		"gap_tolerance_days", a.cfg.GapToleranceDays,
	)

	merged, gaps, err := Merge(prices, index, a.cfg.GapToleranceDays)
	if err != nil {
		return nil, fmt.Errorf("merge series: %w", err)
	}
	for _, g := range gaps {
		a.logger.WarnContext(ctx, "irregular month spacing detected", "gap", g.String())
	}

	records := ComputeReturns(merged)
	if len(records) == 0 {
		return nil, fmt.Errorf("compute returns: %w", ErrInsufficientData)
	}
	a.logger.InfoContext(ctx, "merged and derived returns",
		"merged_months", len(merged),
		"analysis_records", len(records),
	)

	// Whole-sample statistics exclude undefined pairs; rolling columns run
	// over the full aligned sequence so they line up with the records.
	cleanInflation, cleanReturns := definedPairs(records)
	inflation, returns := pairs(records)

	result := &Result{Records: records, Gaps: gaps}

	result.Correlation, err = Correlation(cleanInflation, cleanReturns)
	if err != nil {
		a.logger.WarnContext(ctx, "whole-sample correlation undefined", "error", err)
	}

	result.Regression, err = FitOLS(cleanInflation, cleanReturns)
	switch {
	case errors.Is(err, ErrInsufficientData), errors.Is(err, ErrZeroVariance):
		// Fatal for this statistic only; the rest of the pipeline runs.
		a.logger.WarnContext(ctx, "whole-sample regression undefined", "error", err)
		result.Regression = undefinedRegression(len(cleanInflation))
	case err != nil:
		return nil, fmt.Errorf("whole-sample regression: %w", err)
	}

	if err := a.computeRolling(ctx, result, inflation, returns); err != nil {
		return nil, err
	}

	a.logger.InfoContext(ctx, "analysis complete",
		"correlation", result.Correlation,
		"beta", result.Regression.Slope,
		"beta_p_value", result.Regression.SlopePValue,
		"r_squared", result.Regression.RSquared,
	)
	return result, nil
}

// computeRolling fills the rolling statistic columns. Window widths run
// concurrently: each goroutine reads the shared input and writes one
// disjoint output column, so no locking is needed. A width larger than
// the sample is skipped with a warning, not a failure.
func (a *Analyzer) computeRolling(ctx context.Context, result *Result, inflation, returns []float64) error {
	widths := make([]int, 0, len(a.cfg.CorrWindows))
	for _, w := range a.cfg.CorrWindows {
		if w > len(inflation) {
			a.logger.WarnContext(ctx, "skipping rolling correlation window",
				"window", w,
				"observations", len(inflation),
				"reason", ErrInsufficientData.Error(),
			)
			continue
		}
		widths = append(widths, w)
	}
	sort.Ints(widths)

	result.RollingCorr = make([]RollingSeries, len(widths))

	g, gctx := errgroup.WithContext(ctx)
	for i, w := range widths {
		i, w := i, w
		g.Go(func() error {
			values, err := RollingCorrelation(inflation, returns, w)
			if err != nil {
				return fmt.Errorf("rolling correlation (window %d): %w", w, err)
			}
			result.RollingCorr[i] = RollingSeries{Window: w, Values: values}
			return nil
		})
	}

	g.Go(func() error {
		w := a.cfg.BetaWindow
		values, err := RollingBeta(inflation, returns, w)
		if errors.Is(err, ErrInsufficientData) {
			a.logger.WarnContext(gctx, "skipping rolling beta",
				"window", w,
				"observations", len(inflation),
			)
			result.RollingBeta = RollingSeries{Window: w, Values: nanSlice(len(inflation))}
			return nil
		}
		if err != nil {
			return fmt.Errorf("rolling beta (window %d): %w", w, err)
		}
		result.RollingBeta = RollingSeries{Window: w, Values: values}
		return nil
	})

	return g.Wait()
}
