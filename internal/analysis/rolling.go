package analysis

import (
	"fmt"
	"math"
)

// RollingCorrelation computes the Pearson correlation of the window most
// recent pairs at every position. The output has the same length as the
// input: the first window-1 positions, and any window whose correlation is
// undefined, hold NaN.
func RollingCorrelation(x, y []float64, window int) ([]float64, error) {
	if err := checkWindow(x, y, window); err != nil {
		return nil, err
	}

	out := nanSlice(len(x))
	for i := window - 1; i < len(x); i++ {
		// Undefined windows (zero variance, NaN members) stay NaN.
		c, err := Correlation(x[i-window+1:i+1], y[i-window+1:i+1])
		if err == nil {
			out[i] = c
		}
	}
	return out, nil
}

// RollingBeta runs an OLS fit within every length-window slice and records
// the slope. A singular or otherwise unsolvable window marks its position
// NaN and the sweep continues; one degenerate window never aborts the run.
func RollingBeta(x, y []float64, window int) ([]float64, error) {
	if window < MinObservationsForFit {
		return nil, fmt.Errorf("rolling beta window %d below minimum %d: %w", window, MinObservationsForFit, ErrInsufficientData)
	}
	if err := checkWindow(x, y, window); err != nil {
		return nil, err
	}

	out := nanSlice(len(x))
	for i := window - 1; i < len(x); i++ {
		fit, err := FitOLS(x[i-window+1:i+1], y[i-window+1:i+1])
		if err != nil {
			continue
		}
		out[i] = fit.Slope
	}
	return out, nil
}

func checkWindow(x, y []float64, window int) error {
	if len(x) != len(y) {
		return fmt.Errorf("rolling: sample lengths differ (%d vs %d)", len(x), len(y))
	}
	if window < 2 {
		return fmt.Errorf("rolling: window must be at least 2, got %d", window)
	}
	if window > len(x) {
		return fmt.Errorf("rolling: window %d exceeds sample size %d: %w", window, len(x), ErrInsufficientData)
	}
	return nil
}

func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}
