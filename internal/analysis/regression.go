package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Correlation computes the Pearson correlation coefficient of two equal
// length samples. It is undefined (NaN plus an error) for fewer than two
// points or when either sample has zero variance.
func Correlation(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return math.NaN(), fmt.Errorf("correlation: sample lengths differ (%d vs %d)", len(x), len(y))
	}
	if len(x) < 2 {
		return math.NaN(), fmt.Errorf("correlation needs at least 2 observations, got %d: %w", len(x), ErrInsufficientData)
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return math.NaN(), fmt.Errorf("correlation: %w", ErrZeroVariance)
	}
	return stat.Correlation(x, y, nil), nil
}

// FitOLS fits y = intercept + slope*x by ordinary least squares and
// derives the two-sided p-value of the slope under the null of zero slope
// using the t-distribution with n-2 degrees of freedom.
//
// At least MinObservationsForFit observations are required, and x must
// not be constant.
func FitOLS(x, y []float64) (RegressionResult, error) {
	n := len(x)
	if len(y) != n {
		return RegressionResult{}, fmt.Errorf("ols: sample lengths differ (%d vs %d)", n, len(y))
	}
	if n < MinObservationsForFit {
		return RegressionResult{}, fmt.Errorf("ols needs at least %d observations, got %d: %w", MinObservationsForFit, n, ErrInsufficientData)
	}

	xMean := stat.Mean(x, nil)
	var sxx float64
	for _, v := range x {
		d := v - xMean
		sxx += d * d
	}
	if sxx == 0 {
		return RegressionResult{}, fmt.Errorf("ols: regressor is constant: %w", ErrZeroVariance)
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)

	var rss float64
	for i := range x {
		r := y[i] - (intercept + slope*x[i])
		rss += r * r
	}

	dof := float64(n - 2)
	pValue := slopePValue(slope, rss, sxx, dof)

	return RegressionResult{
		Intercept:   intercept,
		Slope:       slope,
		SlopePValue: pValue,
		RSquared:    stat.RSquared(x, y, nil, intercept, slope),
		N:           n,
	}, nil
}

// slopePValue computes the two-sided p-value of the slope coefficient.
// A perfect noiseless fit has zero standard error; the slope is then
// either exactly zero (p = 1, no evidence against the null) or nonzero
// with certainty (p = 0).
func slopePValue(slope, rss, sxx, dof float64) float64 {
	se := math.Sqrt(rss / dof / sxx)
	if se == 0 {
		if slope == 0 {
			return 1
		}
		return 0
	}
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof}
	return 2 * t.CDF(-math.Abs(slope/se))
}

// pairs extracts the (inflation, return) columns aligned with the record
// sequence, NaN markers included. Rolling statistics run over these so
// their output columns line up with the records.
func pairs(records []ReturnRecord) (inflation, returns []float64) {
	inflation = make([]float64, len(records))
	returns = make([]float64, len(records))
	for i, rec := range records {
		inflation[i] = rec.InflationRate
		returns[i] = rec.AssetReturn
	}
	return inflation, returns
}

// definedPairs extracts the (inflation, return) pairs where both values
// are defined. Zero-division points from the return stage carry NaN and
// are excluded from every statistic rather than poisoning them.
func definedPairs(records []ReturnRecord) (inflation, returns []float64) {
	inflation = make([]float64, 0, len(records))
	returns = make([]float64, 0, len(records))
	for _, rec := range records {
		if math.IsNaN(rec.InflationRate) || math.IsNaN(rec.AssetReturn) {
			continue
		}
		inflation = append(inflation, rec.InflationRate)
		returns = append(returns, rec.AssetReturn)
	}
	return inflation, returns
}
