package analysis

import (
	"sort"
	"time"

	"hedgecli/internal/timeseries"
)

// Merge inner-joins the price and index series on the canonical month key.
// Months present in only one series are silently dropped. The result is
// sorted ascending by month and contains one record per distinct month;
// callers may rely on strict monotonicity.
//
// Consecutive months further apart than gapToleranceDays are reported as
// Gaps alongside the records.
func Merge(prices, index []timeseries.Observation, gapToleranceDays int) ([]MergedRecord, []Gap, error) {
	if gapToleranceDays <= 0 {
		gapToleranceDays = DefaultGapToleranceDays
	}

	indexByMonth := make(map[time.Time]float64, len(index))
	for _, obs := range index {
		indexByMonth[obs.Month] = obs.Value
	}

	merged := make([]MergedRecord, 0, len(prices))
	for _, obs := range prices {
		idx, ok := indexByMonth[obs.Month]
		if !ok {
			continue
		}
		merged = append(merged, MergedRecord{
			Month: obs.Month,
			Price: obs.Value,
			Index: idx,
		})
	}

	if len(merged) == 0 {
		return nil, nil, ErrNoOverlap
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Month.Before(merged[j].Month)
	})

	var gaps []Gap
	for i := 1; i < len(merged); i++ {
		days := int(merged[i].Month.Sub(merged[i-1].Month).Hours() / 24)
		if days > gapToleranceDays {
			gaps = append(gaps, Gap{
				From: merged[i-1].Month,
				To:   merged[i].Month,
				Days: days,
			})
		}
	}

	return merged, gaps, nil
}
