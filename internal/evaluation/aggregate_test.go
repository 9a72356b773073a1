package evaluation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skycast/internal/types"
)

func day(offset int) time.Time {
	return time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func sample(offset int, temp, pres, wind float64) types.ForecastSample {
	return types.ForecastSample{
		Date:        day(offset),
		Temperature: floatPtr(temp),
		Pressure:    floatPtr(pres),
		WindSpeed:   floatPtr(wind),
	}
}

func testAggregator(t *testing.T) *Aggregator {
	t.Helper()
	return NewAggregator(testComfortScorer(t), 5.0)
}

func TestAggregateIdenticalDaysIsConstant(t *testing.T) {
	agg := testAggregator(t)

	report, err := agg.Aggregate([]types.ForecastSample{
		sample(0, 20.0, 1010.0, 1.38),
		sample(1, 20.0, 1010.0, 1.38),
	})
	require.NoError(t, err)

	assert.Equal(t, types.TendencyConstant, report.GlobalTendency)
	assert.Equal(t, types.TendencyConstant, report.TemperatureTendency)
	assert.Equal(t, types.BigTendencyConstant, report.PressureTendency)
	assert.Equal(t, types.BeaufortLightAir, report.WindCategory)
}

func TestAggregateTrendingWindow(t *testing.T) {
	agg := testAggregator(t)

	// Reference day is cold with low pressure; the rest of the window is
	// warmer, much higher pressure, and windier.
	report, err := agg.Aggregate([]types.ForecastSample{
		sample(0, 5.0, 995.0, 2.0),
		sample(1, 18.0, 1020.0, 8.0),
		sample(2, 22.0, 1024.0, 9.0),
	})
	require.NoError(t, err)

	assert.Equal(t, types.TendencyIncreasing, report.GlobalTendency)
	assert.Equal(t, types.TendencyIncreasing, report.TemperatureTendency)
	assert.Equal(t, types.BigTendencyBigIncreasing, report.PressureTendency)
	// Average wind 8.5 m/s = 30.6 km/h -> FRESH_BREEZE.
	assert.Equal(t, types.BeaufortFreshBreeze, report.WindCategory)
}

func TestAggregateReferenceIsEarliestRegardlessOfOrder(t *testing.T) {
	agg := testAggregator(t)

	window := []types.ForecastSample{
		sample(2, 25.0, 1015.0, 3.0),
		sample(0, 10.0, 1000.0, 3.0), // earliest, becomes the reference
		sample(1, 25.0, 1015.0, 3.0),
	}
	report, err := agg.Aggregate(window)
	require.NoError(t, err)

	assert.Equal(t, types.TendencyIncreasing, report.TemperatureTendency)
}

// Two distinct days can carry identical weather values; exclusion happens by
// the reference day's index, so only one of them leaves the comparison set.
func TestAggregateExcludesReferenceByIndexNotValue(t *testing.T) {
	agg := testAggregator(t)

	window := []types.ForecastSample{
		sample(0, 10.0, 1000.0, 3.0),
		sample(1, 10.0, 1000.0, 3.0), // same values as the reference day
		sample(2, 30.0, 1000.0, 3.0),
	}
	report, err := agg.Aggregate(window)
	require.NoError(t, err)

	// Comparison average temperature is (10+30)/2 = 20, not 30.
	assert.Equal(t, types.TendencyIncreasing, report.TemperatureTendency)
}

func TestAggregateIncompleteSampleFailsWholeWindow(t *testing.T) {
	agg := testAggregator(t)

	window := []types.ForecastSample{
		sample(0, 20.0, 1010.0, 1.38),
		{
			Date:      day(1),
			Pressure:  floatPtr(1010.0),
			WindSpeed: floatPtr(1.38),
			// temperature missing
		},
		sample(2, 20.0, 1010.0, 1.38),
	}
	_, err := agg.Aggregate(window)
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeDataIncomplete, appErr.Code)
}

func TestAggregateEmptyWindow(t *testing.T) {
	agg := testAggregator(t)

	_, err := agg.Aggregate(nil)
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeDataEmptyWindow, appErr.Code)
}

func TestAggregateSingleDayWindow(t *testing.T) {
	agg := testAggregator(t)

	_, err := agg.Aggregate([]types.ForecastSample{
		sample(0, 20.0, 1010.0, 1.38),
	})
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeDataEmptyWindow, appErr.Code)
}

func TestAggregateIsIdempotent(t *testing.T) {
	agg := testAggregator(t)

	window := []types.ForecastSample{
		sample(0, 5.0, 995.0, 2.0),
		sample(1, 18.0, 1020.0, 8.0),
		sample(2, 22.0, 1024.0, 9.0),
	}
	first, err := agg.Aggregate(window)
	require.NoError(t, err)
	second, err := agg.Aggregate(window)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAggregateNegativeAverageWindRejected(t *testing.T) {
	agg := testAggregator(t)

	_, err := agg.Aggregate([]types.ForecastSample{
		sample(0, 20.0, 1010.0, 1.0),
		sample(1, 20.0, 1010.0, -4.0),
	})
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeDataWindSpeedRange, appErr.Code)
}
