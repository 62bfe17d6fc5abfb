package timeseries

import "time"

// Observation is one monthly data point: a canonical month key (first of
// month, UTC) and the metric value recorded for that month. Observations
// are immutable once built.
type Observation struct {
	Month time.Time `json:"month"`
	Value float64   `json:"value"`
}

// BuildSeries pairs a column of raw date tokens with its values, runs date
// normalization, and rejects duplicate month keys. Input order is
// preserved; sorting happens at merge time.
func BuildSeries(column string, tokens []string, values []float64) ([]Observation, error) {
	if len(tokens) != len(values) {
		return nil, &LengthMismatchError{Column: column, Dates: len(tokens), Values: len(values)}
	}

	dates, err := NormalizeDates(column, tokens)
	if err != nil {
		return nil, err
	}

	seen := make(map[time.Time]struct{}, len(dates))
	series := make([]Observation, len(dates))
	for i, d := range dates {
		if _, dup := seen[d]; dup {
			return nil, &DuplicateMonthError{Column: column, Month: d}
		}
		seen[d] = struct{}{}
		series[i] = Observation{Month: d, Value: values[i]}
	}
	return series, nil
}

// LengthMismatchError reports date and value columns of different lengths.
type LengthMismatchError struct {
	Column string
	Dates  int
	Values int
}

func (e *LengthMismatchError) Error() string {
	return "column " + e.Column + ": date and value counts differ"
}
