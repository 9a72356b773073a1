package evaluation

import "skycast/internal/types"

// Aggregator turns a forecast window into a ForecastReport by comparing the
// reference day (earliest date) against the average of the remaining days.
// The comparison is deliberately order-dependent and non-commutative: it
// answers "is the window trending away from its first day", not a symmetric
// regression.
type Aggregator struct {
	scorer           *ComfortScorer
	pressureBigDelta float64
}

// NewAggregator creates an Aggregator. pressureBigDelta is the significance
// threshold above which a pressure swing is classified as a BIG_ tendency.
func NewAggregator(scorer *ComfortScorer, pressureBigDelta float64) *Aggregator {
	return &Aggregator{
		scorer:           scorer,
		pressureBigDelta: pressureBigDelta,
	}
}

// Aggregate evaluates a forecast window. The window must contain at least
// two complete samples: the earliest-dated sample becomes the reference day
// and every other sample is pooled into the comparison set.
//
// A sample missing any of temperature, pressure or wind speed fails the
// whole aggregation; partial-window scoring on incomplete data is never
// allowed silently. Aggregate is a pure function: the same window and
// configuration always produce the same report.
func (a *Aggregator) Aggregate(window []types.ForecastSample) (*types.ForecastReport, error) {
	if len(window) == 0 {
		return nil, types.NewAppError(
			types.ErrCodeDataEmptyWindow,
			"forecast window is empty",
			nil,
		)
	}
	for _, sample := range window {
		if !sample.Complete() {
			return nil, types.NewAppError(
				types.ErrCodeDataIncomplete,
				"forecast window contains a sample missing temperature, pressure or wind speed",
				nil,
			)
		}
	}

	// Reference day: first-encountered sample with the minimum date. The
	// comparison set excludes it by index, so a second day with identical
	// weather values stays in the pool.
	refIdx := 0
	for i, sample := range window {
		if sample.Date.Before(window[refIdx].Date) {
			refIdx = i
		}
	}
	reference := window[refIdx]

	if len(window) < 2 {
		return nil, types.NewAppError(
			types.ErrCodeDataEmptyWindow,
			"forecast window needs at least two days to compare against the reference day",
			nil,
		)
	}

	var sumTemp, sumPres, sumWind float64
	for i, sample := range window {
		if i == refIdx {
			continue
		}
		sumTemp += *sample.Temperature
		sumPres += *sample.Pressure
		sumWind += *sample.WindSpeed
	}
	n := float64(len(window) - 1)
	avgTemp := sumTemp / n
	avgPres := sumPres / n
	avgWind := sumWind / n

	average := types.ForecastSample{
		Temperature: &avgTemp,
		Pressure:    &avgPres,
		WindSpeed:   &avgWind,
	}

	referenceScore, err := a.scorer.ScoreDay(reference)
	if err != nil {
		return nil, err
	}
	averageScore, err := a.scorer.ScoreDay(average)
	if err != nil {
		return nil, err
	}

	windCategory, err := types.BeaufortFromMetersPerSecond(avgWind)
	if err != nil {
		return nil, err
	}

	return &types.ForecastReport{
		GlobalTendency:      types.TendencyOf(referenceScore, averageScore),
		TemperatureTendency: types.TendencyOf(*reference.Temperature, avgTemp),
		PressureTendency:    types.BigTendencyOf(*reference.Pressure, avgPres, a.pressureBigDelta),
		WindCategory:        windCategory,
	}, nil
}
