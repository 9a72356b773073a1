// Package evaluation contains the weather evaluation core: weighted comfort
// scoring of a day's weather against configured reference points, and the
// aggregation of a forecast window into a reference-day-vs-rest comparison.
//
// Every component in this package is a stateless pure function (or a
// stateless composition of pure functions) over its inputs. Construction is
// the only place configuration errors can surface; scoring never fails once
// a scorer is built.
package evaluation

import (
	"fmt"
	"math"
)

// Curve selects the scoring falloff shape of a Profile.
type Curve string

const (
	// CurveLinear decreases linearly from the optimal value to the worst
	// value, continuing past both ends.
	CurveLinear Curve = "linear"
	// CurveOptimalPeak peaks at the optimal value and falls off with squared
	// distance, symmetric on both sides.
	CurveOptimalPeak Curve = "optimal_peak"
)

// Profile parameterizes a ValueScorer for one physical quantity. Weight is
// the maximum achievable score, reached exactly at OptimalValue. WorstValue
// is where the score crosses zero (for CurveOptimalPeak, on both sides at
// OptimalValue ± |WorstValue-OptimalValue|).
type Profile struct {
	Weight       float64
	OptimalValue float64
	WorstValue   float64
	Curve        Curve
}

// ValueScorer maps a scalar value to a weighted comfort score. Scores are
// never clamped: values outside [0, weight] signal "worse than the
// worst-case reference" and are meaningful to tendency comparisons.
type ValueScorer interface {
	Score(value float64) float64
}

// NewValueScorer builds the scorer selected by the profile's curve. The
// optimal and worst reference points must differ; a profile where they are
// equal is a configuration error and fails here, at construction time,
// rather than at scoring time.
func NewValueScorer(p Profile) (ValueScorer, error) {
	if p.OptimalValue == p.WorstValue {
		return nil, fmt.Errorf("worst value cannot be equal to optimal value")
	}
	switch p.Curve {
	case CurveLinear:
		return linearScorer{p}, nil
	case CurveOptimalPeak:
		return optimalPeakScorer{p}, nil
	default:
		return nil, fmt.Errorf("unknown scoring curve %q", p.Curve)
	}
}

// linearScorer scores linearly from weight at the optimal value down to zero
// at the worst value. For a pressure profile with optimal 1100 hPa and worst
// 900 hPa: Score(1100)=weight, Score(900)=0, Score(1200)>weight,
// Score(800)<0.
type linearScorer struct {
	p Profile
}

func (s linearScorer) Score(value float64) float64 {
	distance := s.p.WorstValue - s.p.OptimalValue
	return s.p.Weight * ((s.p.WorstValue - value) / distance)
}

// optimalPeakScorer treats values on both sides of the optimal as equally
// bad. The worst value only defines the distance |worst-optimal|; the score
// reaches zero at optimal ± that distance and goes negative beyond. For a
// temperature profile with optimal 20°C and worst 0°C: Score(20)=weight,
// Score(0)=0, Score(40)=0, Score(-10)<0, Score(50)<0.
type optimalPeakScorer struct {
	p Profile
}

func (s optimalPeakScorer) Score(value float64) float64 {
	distance := math.Abs(s.p.WorstValue - s.p.OptimalValue)
	ratio := 1.0 - math.Pow((s.p.OptimalValue-value)/distance, 2)
	return s.p.Weight * ratio
}
