package types

import "math"

// Tendency is the ordinal direction of a before/after comparison.
type Tendency string

const (
	TendencyIncreasing Tendency = "INCREASING"
	TendencyConstant   Tendency = "CONSTANT"
	TendencyDecreasing Tendency = "DECREASING"
)

// TendencyOf classifies the direction from before to after using strict
// comparison. Exact equality, including floating-point equality, yields
// TendencyConstant; there is no epsilon tolerance.
func TendencyOf(before, after float64) Tendency {
	switch {
	case before < after:
		return TendencyIncreasing
	case before > after:
		return TendencyDecreasing
	default:
		return TendencyConstant
	}
}

// BigTendency extends Tendency with magnitude-significant extremes.
type BigTendency string

const (
	BigTendencyBigIncreasing BigTendency = "BIG_INCREASING"
	BigTendencyIncreasing    BigTendency = "INCREASING"
	BigTendencyConstant      BigTendency = "CONSTANT"
	BigTendencyDecreasing    BigTendency = "DECREASING"
	BigTendencyBigDecreasing BigTendency = "BIG_DECREASING"
)

// BigTendencyOf classifies the direction from before to after, promoting the
// result to a BIG_ variant when |before-after| exceeds bigDelta. A negative
// bigDelta makes every non-constant change "big".
func BigTendencyOf(before, after, bigDelta float64) BigTendency {
	switch {
	case math.Abs(before-after) > bigDelta && before < after:
		return BigTendencyBigIncreasing
	case math.Abs(before-after) > bigDelta && before > after:
		return BigTendencyBigDecreasing
	case before < after:
		return BigTendencyIncreasing
	case before > after:
		return BigTendencyDecreasing
	default:
		return BigTendencyConstant
	}
}

// BeaufortScale is the standard 13-band wind-force classification.
type BeaufortScale string

const (
	BeaufortCalm           BeaufortScale = "CALM"
	BeaufortLightAir       BeaufortScale = "LIGHT_AIR"
	BeaufortLightBreeze    BeaufortScale = "LIGHT_BREEZE"
	BeaufortGentleBreeze   BeaufortScale = "GENTLE_BREEZE"
	BeaufortModerateBreeze BeaufortScale = "MODERATE_BREEZE"
	BeaufortFreshBreeze    BeaufortScale = "FRESH_BREEZE"
	BeaufortStrongBreeze   BeaufortScale = "STRONG_BREEZE"
	BeaufortHighWind       BeaufortScale = "HIGH_WIND"
	BeaufortGale           BeaufortScale = "GALE"
	BeaufortStrongGale     BeaufortScale = "STRONG_GALE"
	BeaufortStorm          BeaufortScale = "STORM"
	BeaufortViolentStorm   BeaufortScale = "VIOLENT_STORM"
	BeaufortHurricaneForce BeaufortScale = "HURRICANE_FORCE"
)

// beaufortBands maps each scale to its inclusive lower bound in km/h.
// Bands are contiguous and exhaustive from 0 upward; the last band is
// unbounded above.
var beaufortBands = []struct {
	MinKmh int
	Scale  BeaufortScale
}{
	{0, BeaufortCalm},
	{2, BeaufortLightAir},
	{6, BeaufortLightBreeze},
	{12, BeaufortGentleBreeze},
	{20, BeaufortModerateBreeze},
	{29, BeaufortFreshBreeze},
	{39, BeaufortStrongBreeze},
	{50, BeaufortHighWind},
	{62, BeaufortGale},
	{75, BeaufortStrongGale},
	{89, BeaufortStorm},
	{103, BeaufortViolentStorm},
	{118, BeaufortHurricaneForce},
}

// metersPerSecondToKmh is the exact conversion factor 3600/1000.
const metersPerSecondToKmh = 3.6

// BeaufortFromMetersPerSecond classifies a wind speed in m/s into its
// Beaufort band. The speed is converted to km/h and truncated to an integer
// before the band lookup. Negative speeds are not a domain value and yield
// a data error rather than being clamped to CALM.
func BeaufortFromMetersPerSecond(speed float64) (BeaufortScale, error) {
	kmh := int(speed * metersPerSecondToKmh)
	for i := len(beaufortBands) - 1; i >= 0; i-- {
		if kmh >= beaufortBands[i].MinKmh {
			return beaufortBands[i].Scale, nil
		}
	}
	return "", NewAppError(
		ErrCodeDataWindSpeedRange,
		"wind speed is negative, no Beaufort band matches",
		nil,
	)
}

// BandIndex returns the ordinal position of the scale among the Beaufort
// bands, 0 for CALM through 12 for HURRICANE_FORCE. Unknown values return -1.
func (b BeaufortScale) BandIndex() int {
	for i, band := range beaufortBands {
		if band.Scale == b {
			return i
		}
	}
	return -1
}
