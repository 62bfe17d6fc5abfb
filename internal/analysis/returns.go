package analysis

import "math"

// ComputeReturns derives the month-over-month percentage change of the
// index (inflation rate) and the price (asset return) for every merged
// record after the first. The first record has no prior period and is not
// represented in the output at all.
//
// A previous value of exactly zero makes the corresponding rate undefined
// for that one record (NaN); it never aborts the computation.
func ComputeReturns(records []MergedRecord) []ReturnRecord {
	if len(records) < 2 {
		return nil
	}

	out := make([]ReturnRecord, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1], records[i]
		out = append(out, ReturnRecord{
			MergedRecord:  cur,
			InflationRate: pctChange(prev.Index, cur.Index),
			AssetReturn:   pctChange(prev.Price, cur.Price),
		})
	}
	return out
}

func pctChange(prev, cur float64) float64 {
	if prev == 0 {
		return math.NaN()
	}
	return (cur - prev) / prev * 100
}
