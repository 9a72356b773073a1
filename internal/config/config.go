// Package config defines the skycast configuration. Configuration is loaded
// once at process initialization and is immutable thereafter, following
// 12-Factor principles. Any missing required value or invalid format fails
// the application immediately on startup.
package config

import (
	"time"

	"skycast/internal/evaluation"
	"skycast/internal/types"
)

// SecretString is an alias for types.SecretString, the redacted secret type
// used to prevent accidental logging of sensitive values.
type SecretString = types.SecretString

// Config is the top-level configuration struct. Sub-components receive only
// the specific subsets they require.
type Config struct {
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev staging prod"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	Server     ServerConfig
	Weatherbit WeatherbitConfig
	Evaluation EvaluationConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"10s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

// WeatherbitConfig holds the upstream provider connection and cache tuning.
type WeatherbitConfig struct {
	BaseURL string       `envconfig:"WEATHERBIT_BASE_URL" default:"https://api.weatherbit.io/v2.0" validate:"required,url"`
	APIKey  SecretString `envconfig:"WEATHERBIT_API_KEY" validate:"required"`

	// ForecastDays is the window length requested from the daily-forecast
	// endpoint. Aggregation needs at least two days.
	ForecastDays int           `envconfig:"WEATHERBIT_FORECAST_DAYS" default:"16" validate:"min=2,max=16"`
	Timeout      time.Duration `envconfig:"WEATHERBIT_TIMEOUT" default:"10s"`

	// Cache entry lifetimes are derived from the provider's rate-limit reset
	// header; these values cap them.
	CurrentCacheMaxLife  time.Duration `envconfig:"WEATHERBIT_CURRENT_CACHE_MAX_LIFE" default:"10m"`
	ForecastCacheMaxLife time.Duration `envconfig:"WEATHERBIT_FORECAST_CACHE_MAX_LIFE" default:"1h"`
}

// EvaluationConfig holds the comfort-scoring reference points. The optimal
// and worst values of a profile must differ; that invariant is enforced when
// the scorers are constructed at startup.
type EvaluationConfig struct {
	Temperature TemperatureProfile
	Pressure    PressureProfile

	// PressureBigDelta is the significance threshold (hPa) above which a
	// pressure swing is classified as a BIG_ tendency.
	PressureBigDelta float64 `envconfig:"EVAL_PRESSURE_BIG_DELTA" default:"3"`
}

// TemperatureProfile configures the temperature scorer. The optimal-peak
// curve penalizes both colder and hotter days symmetrically.
type TemperatureProfile struct {
	Weight       float64 `envconfig:"EVAL_TEMPERATURE_WEIGHT" default:"2"`
	OptimalValue float64 `envconfig:"EVAL_TEMPERATURE_OPTIMAL" default:"21"`
	WorstValue   float64 `envconfig:"EVAL_TEMPERATURE_WORST" default:"0"`
	Curve        string  `envconfig:"EVAL_TEMPERATURE_CURVE" default:"optimal_peak" validate:"oneof=linear optimal_peak"`
}

// Profile converts the binding struct into an evaluation profile.
func (p TemperatureProfile) Profile() evaluation.Profile {
	return evaluation.Profile{
		Weight:       p.Weight,
		OptimalValue: p.OptimalValue,
		WorstValue:   p.WorstValue,
		Curve:        evaluation.Curve(p.Curve),
	}
}

// PressureProfile configures the pressure scorer. Higher pressure generally
// means fairer weather, hence the linear default.
type PressureProfile struct {
	Weight       float64 `envconfig:"EVAL_PRESSURE_WEIGHT" default:"1"`
	OptimalValue float64 `envconfig:"EVAL_PRESSURE_OPTIMAL" default:"1030"`
	WorstValue   float64 `envconfig:"EVAL_PRESSURE_WORST" default:"980"`
	Curve        string  `envconfig:"EVAL_PRESSURE_CURVE" default:"linear" validate:"oneof=linear optimal_peak"`
}

// Profile converts the binding struct into an evaluation profile.
func (p PressureProfile) Profile() evaluation.Profile {
	return evaluation.Profile{
		Weight:       p.Weight,
		OptimalValue: p.OptimalValue,
		WorstValue:   p.WorstValue,
		Curve:        evaluation.Curve(p.Curve),
	}
}
