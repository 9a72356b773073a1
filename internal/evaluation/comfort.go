package evaluation

import "skycast/internal/types"

// ComfortScorer combines independently configured temperature and pressure
// scorers into one composite score for a single day's weather.
type ComfortScorer struct {
	temperature ValueScorer
	pressure    ValueScorer
}

// NewComfortScorer builds a ComfortScorer from two scoring profiles.
// Construction fails if either profile is invalid.
func NewComfortScorer(temperature, pressure Profile) (*ComfortScorer, error) {
	ts, err := NewValueScorer(temperature)
	if err != nil {
		return nil, err
	}
	ps, err := NewValueScorer(pressure)
	if err != nil {
		return nil, err
	}
	return &ComfortScorer{temperature: ts, pressure: ps}, nil
}

// ScoreDay returns the sum of the temperature and pressure scores for the
// sample. This is the enforcement point for sample completeness: a missing
// field is an explicit error, never substituted with a default, because a
// silent zero would corrupt averages and tendency comparisons downstream.
func (s *ComfortScorer) ScoreDay(sample types.ForecastSample) (float64, error) {
	if sample.Temperature == nil {
		return 0, types.NewAppError(
			types.ErrCodeDataMissingField,
			"not able to score forecast day, missing temperature",
			nil,
		)
	}
	if sample.Pressure == nil {
		return 0, types.NewAppError(
			types.ErrCodeDataMissingField,
			"not able to score forecast day, missing pressure",
			nil,
		)
	}
	return s.temperature.Score(*sample.Temperature) + s.pressure.Score(*sample.Pressure), nil
}
