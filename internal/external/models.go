package external

import (
	"time"

	"skycast/internal/types"
)

// Wire models for the Weatherbit API. Only the fields the service consumes
// are mapped; everything else in the provider payload is ignored.

// currentObsGroup is the envelope of GET /current.
type currentObsGroup struct {
	Count int          `json:"count"`
	Data  []currentObs `json:"data"`
}

// currentObs is a single current-weather observation.
type currentObs struct {
	Temp    *float64 `json:"temp"`     // °C
	RH      *int     `json:"rh"`       // relative humidity %
	WindSpd *float64 `json:"wind_spd"` // m/s
	Weather *struct {
		Description string `json:"description"`
	} `json:"weather"`
}

func (o currentObs) toObservation() types.Observation {
	obs := types.Observation{
		Temperature: o.Temp,
		WindSpeed:   o.WindSpd,
		Humidity:    o.RH,
	}
	if o.Weather != nil {
		obs.Description = &o.Weather.Description
	}
	return obs
}

// forecastDay is the envelope of GET /forecast/daily.
type forecastDay struct {
	CityName string          `json:"city_name"`
	Data     []forecastEntry `json:"data"`
}

// forecastEntry is one day of the daily forecast.
type forecastEntry struct {
	Datetime string   `json:"datetime"` // YYYY-MM-DD
	Temp     *float64 `json:"temp"`     // °C
	Pres     *float64 `json:"pres"`     // hPa
	WindSpd  *float64 `json:"wind_spd"` // m/s
}

const forecastDateLayout = "2006-01-02"

func (e forecastEntry) toSample(now func() time.Time) (types.ForecastSample, error) {
	sample := types.ForecastSample{
		Temperature: e.Temp,
		Pressure:    e.Pres,
		WindSpeed:   e.WindSpd,
	}
	if e.Datetime == "" {
		// The provider omits the date only for the current day.
		sample.Date = now().UTC().Truncate(24 * time.Hour)
		return sample, nil
	}
	date, err := time.Parse(forecastDateLayout, e.Datetime)
	if err != nil {
		return sample, err
	}
	sample.Date = date
	return sample, nil
}
