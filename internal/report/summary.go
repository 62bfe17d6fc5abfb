// Package report renders the run's findings as a plain-text summary:
// study period, descriptive statistics, correlation and regression
// results with their interpretation, and any data-quality warnings.
package report

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/stat"

	"hedgecli/internal/analysis"
)

const separator = "======================================================================"

// SignificanceLevel is the threshold used to label the regression slope
// statistically significant.
const SignificanceLevel = 0.05

// Summarizer renders analysis results as a text report.
type Summarizer struct {
	logger     *slog.Logger
	dateFormat string
}

// NewSummarizer creates a report summarizer.
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger, dateFormat: "January 2006"}
}

// Write renders the report and writes it to path.
func (s *Summarizer) Write(path string, result *analysis.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(s.Render(result)), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	s.logger.Info("wrote summary report", "path", path)
	return nil
}

// Render produces the full report text.
func (s *Summarizer) Render(result *analysis.Result) string {
	var b strings.Builder

	infMean, infStd := describe(result.Records, func(r analysis.ReturnRecord) float64 { return r.InflationRate })
	retMean, retStd := describe(result.Records, func(r analysis.ReturnRecord) float64 { return r.AssetReturn })
	fit := result.Regression

	fmt.Fprintln(&b, separator)
	fmt.Fprintln(&b, "INFLATION HEDGE ANALYSIS: STATISTICAL SUMMARY")
	fmt.Fprintln(&b, separator)
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "Data Period: %s to %s\n", result.Start().Format(s.dateFormat), result.End().Format(s.dateFormat))
	fmt.Fprintf(&b, "Number of Observations: %d\n\n", len(result.Records))

	fmt.Fprintln(&b, "DESCRIPTIVE STATISTICS:")
	fmt.Fprintf(&b, "  Inflation Rate: Mean = %.4f%%, Std = %.4f%%\n", infMean, infStd)
	fmt.Fprintf(&b, "  Asset Returns:  Mean = %.4f%%, Std = %.4f%%\n\n", retMean, retStd)

	fmt.Fprintln(&b, "KEY FINDINGS:")
	fmt.Fprintf(&b, "1. Overall Correlation: %.4f\n", result.Correlation)
	fmt.Fprintf(&b, "   - Asset returns and inflation have a %s relationship\n\n", CorrelationStrength(result.Correlation))

	fmt.Fprintln(&b, "2. Regression (Return = alpha + beta * Inflation):")
	fmt.Fprintf(&b, "   - Intercept (alpha): %.4f\n", fit.Intercept)
	fmt.Fprintf(&b, "   - Beta (slope):      %.4f\n", fit.Slope)
	fmt.Fprintf(&b, "   - P-value:           %.4f %s\n", fit.SlopePValue, significanceLabel(fit))
	fmt.Fprintf(&b, "   - R-squared:         %.4f\n", fit.RSquared)
	fmt.Fprintf(&b, "   - Interpretation: for every 1%% rise in inflation, the asset moves %.2f%% on average\n\n", fit.Slope)

	fmt.Fprintln(&b, "3. Hedge Quality:")
	fmt.Fprintf(&b, "   - %s\n", HedgeQuality(fit.Slope))

	if len(result.Gaps) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "DATA QUALITY WARNINGS:")
		for _, g := range result.Gaps {
			fmt.Fprintf(&b, "   - gap between consecutive months: %s\n", g.String())
		}
	}

	return b.String()
}

// CorrelationStrength classifies the absolute correlation:
// below 0.3 weak, below 0.6 moderate, else strong.
func CorrelationStrength(r float64) string {
	switch abs := math.Abs(r); {
	case math.IsNaN(r):
		return "UNDEFINED"
	case abs < 0.3:
		return "WEAK"
	case abs < 0.6:
		return "MODERATE"
	default:
		return "STRONG"
	}
}

// HedgeQuality classifies the hedge ratio the way the study reports it:
// beta below 0.5 is a weak hedge, below 1.0 partial, else the asset
// over-hedges inflation.
func HedgeQuality(beta float64) string {
	switch {
	case math.IsNaN(beta):
		return "UNDEFINED: too few observations for a hedge ratio"
	case beta < 0.5:
		return fmt.Sprintf("WEAK HEDGE: the asset only captures ~%.0f%% of inflation", beta*100)
	case beta < 1.0:
		return fmt.Sprintf("PARTIAL HEDGE: the asset captures ~%.0f%% of inflation", beta*100)
	default:
		return "STRONG HEDGE: the asset captures MORE than inflation (over-hedge)"
	}
}

func significanceLabel(fit analysis.RegressionResult) string {
	if !fit.Defined() {
		return "(UNDEFINED)"
	}
	if fit.Significant(SignificanceLevel) {
		return "(Statistically Significant at 5%)"
	}
	return "(NOT Statistically Significant)"
}

// describe computes mean and sample standard deviation of one derived
// column, skipping undefined values.
func describe(records []analysis.ReturnRecord, pick func(analysis.ReturnRecord) float64) (mean, std float64) {
	values := make([]float64, 0, len(records))
	for _, rec := range records {
		v := pick(rec)
		if math.IsNaN(v) {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return math.NaN(), math.NaN()
	}
	return stat.MeanStdDev(values, nil)
}
