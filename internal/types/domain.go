// Package types defines the domain model shared across the skycast service:
// weather observations and forecast samples, the evaluated output DTOs, the
// ordinal tendency and Beaufort classifications, and the error taxonomy.
// Everything here is an immutable value object built per request and
// discarded once the response is produced.
package types

import "time"

// Observation is a single current-weather reading as delivered by the
// upstream provider, after unit normalization (°C, m/s, hPa). Fields are
// pointers because the provider may omit any of them.
type Observation struct {
	Description *string
	Temperature *float64 // °C
	WindSpeed   *float64 // m/s
	Humidity    *int     // %
}

// ForecastSample is one day of forecast data. Temperature, Pressure and
// WindSpeed are all required for aggregation; a sample missing any of them
// invalidates the whole window rather than being silently skipped.
type ForecastSample struct {
	Date        time.Time
	Temperature *float64 // °C
	Pressure    *float64 // hPa
	WindSpeed   *float64 // m/s
}

// Complete reports whether the sample carries every field the forecast
// aggregation requires.
func (s ForecastSample) Complete() bool {
	return s.Temperature != nil && s.Pressure != nil && s.WindSpeed != nil
}

// CurrentConditions is the current-weather response DTO. Wind speed is
// reported in m/s, matching the internal canonical unit.
type CurrentConditions struct {
	Description string   `json:"description,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"` // °C
	WindSpeed   *float64 `json:"windSpeed,omitempty"`   // m/s
	Humidity    *int     `json:"humidity,omitempty"`    // %
}

// ForecastReport is the evaluated forecast response DTO: the reference day
// (earliest in the window) compared against the averaged rest of the window.
// Enum values serialize as their names.
type ForecastReport struct {
	GlobalTendency      Tendency      `json:"globalTendency"`
	TemperatureTendency Tendency      `json:"temperatureTendency"`
	PressureTendency    BigTendency   `json:"pressureTendency"`
	WindCategory        BeaufortScale `json:"windCategory"`
}
