package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelation(t *testing.T) {
	t.Run("perfect positive", func(t *testing.T) {
		x := []float64{1, 2, 3, 4}
		y := []float64{2, 4, 6, 8}
		r, err := Correlation(x, y)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, r, 1e-12)
	})

	t.Run("perfect negative", func(t *testing.T) {
		x := []float64{1, 2, 3, 4}
		y := []float64{8, 6, 4, 2}
		r, err := Correlation(x, y)
		require.NoError(t, err)
		assert.InDelta(t, -1.0, r, 1e-12)
	})

	// Two points always lie on a line: r is +-1 and defined, though too
	// small for stable significance testing.
	t.Run("two points degenerate but defined", func(t *testing.T) {
		r, err := Correlation([]float64{2.0, 0.980392}, []float64{10, -10})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, r, 1e-9)
	})

	t.Run("single point insufficient", func(t *testing.T) {
		r, err := Correlation([]float64{1}, []float64{2})
		assert.ErrorIs(t, err, ErrInsufficientData)
		assert.True(t, math.IsNaN(r))
	})

	t.Run("zero variance", func(t *testing.T) {
		r, err := Correlation([]float64{3, 3, 3}, []float64{1, 2, 3})
		assert.ErrorIs(t, err, ErrZeroVariance)
		assert.True(t, math.IsNaN(r))
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := Correlation([]float64{1, 2}, []float64{1})
		assert.Error(t, err)
	})
}

// Noiseless synthetic data: y = 2x + 1 exactly must be recovered to
// floating point tolerance with R squared of one.
func TestFitOLSExactLine(t *testing.T) {
	x := make([]float64, 10)
	y := make([]float64, 10)
	for i := range x {
		x[i] = float64(i)
		y[i] = 2*x[i] + 1
	}

	fit, err := FitOLS(x, y)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, fit.Slope, 1e-9)
	assert.InDelta(t, 1.0, fit.Intercept, 1e-9)
	assert.InDelta(t, 1.0, fit.RSquared, 1e-9)
	assert.Equal(t, 10, fit.N)
	// Zero residual error: the slope is nonzero with certainty.
	assert.InDelta(t, 0.0, fit.SlopePValue, 1e-12)
	assert.True(t, fit.Significant(0.05))
}

func TestFitOLSNoisy(t *testing.T) {
	// Hand-checked small sample: y roughly 2x + 1 with perturbations.
	x := []float64{0, 1, 2, 3, 4, 5}
	y := []float64{1.1, 2.9, 5.2, 6.8, 9.1, 10.9}

	fit, err := FitOLS(x, y)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, fit.Slope, 0.05)
	assert.InDelta(t, 1.0, fit.Intercept, 0.2)
	assert.Greater(t, fit.RSquared, 0.99)
	assert.Less(t, fit.SlopePValue, 0.001)
	assert.Greater(t, fit.SlopePValue, 0.0)
}

func TestFitOLSFlatResponse(t *testing.T) {
	// Constant y: slope exactly zero with zero residuals, p-value 1.
	x := []float64{1, 2, 3, 4}
	y := []float64{5, 5, 5, 5}

	fit, err := FitOLS(x, y)
	require.NoError(t, err)
	assert.Equal(t, 0.0, fit.Slope)
	assert.Equal(t, 1.0, fit.SlopePValue)
}

func TestFitOLSErrors(t *testing.T) {
	t.Run("insufficient data", func(t *testing.T) {
		_, err := FitOLS([]float64{1, 2}, []float64{1, 2})
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("constant regressor", func(t *testing.T) {
		_, err := FitOLS([]float64{2, 2, 2, 2}, []float64{1, 2, 3, 4})
		assert.ErrorIs(t, err, ErrZeroVariance)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := FitOLS([]float64{1, 2, 3}, []float64{1, 2})
		assert.Error(t, err)
	})
}

func TestSlopePValueSymmetry(t *testing.T) {
	// Mirrored slopes give the same two-sided p-value.
	x := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	up := []float64{0.2, 1.1, 2.3, 2.9, 4.2, 4.8, 6.1, 7.2}
	down := make([]float64, len(up))
	for i, v := range up {
		down[i] = -v
	}

	fitUp, err := FitOLS(x, up)
	require.NoError(t, err)
	fitDown, err := FitOLS(x, down)
	require.NoError(t, err)

	assert.InDelta(t, fitUp.SlopePValue, fitDown.SlopePValue, 1e-12)
	assert.InDelta(t, fitUp.Slope, -fitDown.Slope, 1e-12)
}
