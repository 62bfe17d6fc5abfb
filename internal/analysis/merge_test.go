package analysis

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hedgecli/internal/timeseries"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func obs(y int, m time.Month, v float64) timeseries.Observation {
	return timeseries.Observation{Month: month(y, m), Value: v}
}

func TestMergeInnerJoin(t *testing.T) {
	prices := []timeseries.Observation{
		obs(2023, time.January, 100),
		obs(2023, time.February, 110),
		obs(2023, time.April, 120), // no CPI for April
	}
	cpi := []timeseries.Observation{
		obs(2023, time.January, 100),
		obs(2023, time.February, 102),
		obs(2023, time.March, 103), // no price for March
	}

	merged, gaps, err := Merge(prices, cpi, 0)
	require.NoError(t, err)
	require.Len(t, merged, 2)
	assert.Empty(t, gaps)

	assert.Equal(t, month(2023, time.January), merged[0].Month)
	assert.Equal(t, 100.0, merged[0].Price)
	assert.Equal(t, 100.0, merged[0].Index)
	assert.Equal(t, month(2023, time.February), merged[1].Month)
	assert.Equal(t, 110.0, merged[1].Price)
	assert.Equal(t, 102.0, merged[1].Index)
}

// Regardless of input ordering the merged sequence is strictly increasing
// with no duplicate months.
func TestMergeOrderingProperty(t *testing.T) {
	var prices, cpi []timeseries.Observation
	for m := time.January; m <= time.December; m++ {
		prices = append(prices, obs(2023, m, 100+float64(m)))
		cpi = append(cpi, obs(2023, m, 150+float64(m)))
	}

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		rng.Shuffle(len(prices), func(i, j int) { prices[i], prices[j] = prices[j], prices[i] })
		rng.Shuffle(len(cpi), func(i, j int) { cpi[i], cpi[j] = cpi[j], cpi[i] })

		merged, _, err := Merge(prices, cpi, 0)
		require.NoError(t, err)
		require.Len(t, merged, 12)

		for i := 1; i < len(merged); i++ {
			assert.True(t, merged[i-1].Month.Before(merged[i].Month),
				"months must be strictly increasing: %v before %v", merged[i-1].Month, merged[i].Month)
		}
	}
}

func TestMergeGapDetection(t *testing.T) {
	t.Run("70 day spacing warns", func(t *testing.T) {
		prices := []timeseries.Observation{
			{Month: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Value: 100},
			{Month: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 70), Value: 105},
		}
		cpi := []timeseries.Observation{
			{Month: prices[0].Month, Value: 100},
			{Month: prices[1].Month, Value: 101},
		}

		_, gaps, err := Merge(prices, cpi, 50)
		require.NoError(t, err)
		require.Len(t, gaps, 1)
		assert.Equal(t, 70, gaps[0].Days)
	})

	t.Run("31 day spacing does not warn", func(t *testing.T) {
		prices := []timeseries.Observation{
			obs(2023, time.January, 100),
			obs(2023, time.February, 105),
		}
		cpi := []timeseries.Observation{
			obs(2023, time.January, 100),
			obs(2023, time.February, 101),
		}

		_, gaps, err := Merge(prices, cpi, 50)
		require.NoError(t, err)
		assert.Empty(t, gaps)
	})

	t.Run("skipped month warns", func(t *testing.T) {
		// Jan to Mar is 59 days, beyond the 50 day tolerance.
		prices := []timeseries.Observation{
			obs(2023, time.January, 100),
			obs(2023, time.March, 105),
		}
		cpi := []timeseries.Observation{
			obs(2023, time.January, 100),
			obs(2023, time.March, 101),
		}

		_, gaps, err := Merge(prices, cpi, 50)
		require.NoError(t, err)
		require.Len(t, gaps, 1)
		assert.Equal(t, month(2023, time.January), gaps[0].From)
		assert.Equal(t, month(2023, time.March), gaps[0].To)
	})
}

func TestMergeNoOverlap(t *testing.T) {
	prices := []timeseries.Observation{obs(2023, time.January, 100)}
	cpi := []timeseries.Observation{obs(2024, time.January, 100)}

	_, _, err := Merge(prices, cpi, 0)
	assert.ErrorIs(t, err, ErrNoOverlap)
}
