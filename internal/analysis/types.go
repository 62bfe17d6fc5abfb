package analysis

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// MergedRecord is one month present in both input series.
type MergedRecord struct {
	Month time.Time `json:"month"`
	Price float64   `json:"price"`
	Index float64   `json:"index"`
}

// ReturnRecord extends a merged record with month-over-month percentage
// changes. InflationRate and AssetReturn are NaN when the previous value
// was exactly zero.
type ReturnRecord struct {
	MergedRecord
	InflationRate float64 `json:"inflation_rate"` // % change of the index
	AssetReturn   float64 `json:"asset_return"`   // % change of the price
}

// Gap flags an irregular spacing between two consecutive merged months.
// Gaps are data-quality warnings, never errors.
type Gap struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
	Days int       `json:"days"`
}

func (g Gap) String() string {
	return fmt.Sprintf("%s -> %s (%d days)", g.From.Format("2006-01"), g.To.Format("2006-01"), g.Days)
}

// RegressionResult holds an ordinary least squares fit of asset return on
// inflation rate with an intercept term. Computed once per window,
// immutable thereafter.
type RegressionResult struct {
	Intercept   float64 `json:"intercept"`
	Slope       float64 `json:"slope"`         // hedge ratio: % return per 1% inflation
	SlopePValue float64 `json:"slope_p_value"` // two-sided, t with n-2 dof
	RSquared    float64 `json:"r_squared"`
	N           int     `json:"n"`
}

// Significant reports whether the slope differs from zero at the given
// level (e.g. 0.05).
func (r RegressionResult) Significant(level float64) bool {
	return r.SlopePValue < level
}

// Defined reports whether the fit was computable for the sample.
func (r RegressionResult) Defined() bool {
	return !math.IsNaN(r.Slope)
}

// undefinedRegression marks a whole-sample fit that could not be
// computed; every coefficient is NaN, never silently zero.
func undefinedRegression(n int) RegressionResult {
	nan := math.NaN()
	return RegressionResult{Intercept: nan, Slope: nan, SlopePValue: nan, RSquared: nan, N: n}
}

// RollingSeries is one rolling statistic column, aligned with the return
// records it was computed from. Positions without a full window of
// history, and degenerate windows, hold NaN.
type RollingSeries struct {
	Window int       `json:"window"`
	Values []float64 `json:"values"`
}

// Defined counts the non-NaN positions.
func (rs RollingSeries) Defined() int {
	n := 0
	for _, v := range rs.Values {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// Result is the full output of one pipeline run.
type Result struct {
	Records     []ReturnRecord   `json:"records"`
	Gaps        []Gap            `json:"gaps"`
	Correlation float64          `json:"correlation"`
	Regression  RegressionResult `json:"regression"`
	RollingCorr []RollingSeries  `json:"rolling_corr"`
	RollingBeta RollingSeries    `json:"rolling_beta"`
}

// Start returns the first analyzed month.
func (r *Result) Start() time.Time {
	if len(r.Records) == 0 {
		return time.Time{}
	}
	return r.Records[0].Month
}

// End returns the last analyzed month.
func (r *Result) End() time.Time {
	if len(r.Records) == 0 {
		return time.Time{}
	}
	return r.Records[len(r.Records)-1].Month
}

// Sentinel errors for structural failures. Local numeric degeneracies are
// represented as NaN values instead.
var (
	// ErrInsufficientData means fewer observations than the requested
	// statistic's degrees of freedom require.
	ErrInsufficientData = errors.New("insufficient observations")

	// ErrZeroVariance means a regressor or correlation input is constant.
	ErrZeroVariance = errors.New("zero variance")

	// ErrNoOverlap means the two series share no month keys.
	ErrNoOverlap = errors.New("no overlapping months between series")
)

const (
	// DefaultGapToleranceDays is the spacing above which consecutive
	// months are flagged as a gap (~1.6 months).
	DefaultGapToleranceDays = 50

	// MinObservationsForFit is the smallest sample a whole-sample OLS fit
	// accepts: n-2 degrees of freedom must be at least 1.
	MinObservationsForFit = 3
)
