// Package analysis implements the inflation-hedge study over two monthly
// series: an asset price series and a consumer price index.
//
// The pipeline is strictly sequential and single pass. Each stage takes
// the previous stage's immutable output and returns a new one:
//
//  1. Merge: inner join of both series on the canonical month key, sorted
//     ascending, with gap detection between consecutive months.
//  2. Returns: month-over-month percentage change of price (asset return)
//     and index (inflation rate); the first merged record is dropped.
//  3. Static statistics: whole-sample Pearson correlation and an OLS fit
//     of asset return on inflation rate (hedge ratio, p-value, R²).
//  4. Rolling statistics: sliding-window correlation for multiple window
//     widths and a sliding-window regression slope (rolling beta).
//
// Numeric degeneracies are local: a zero previous value, a zero-variance
// window, or a singular window regression marks that single value as NaN
// and the computation continues. Only structural failures (no common time
// axis, too few observations for a whole-sample fit) surface as errors.
//
// The statistics kernels are built on gonum (stat, stat/distuv).
package analysis
