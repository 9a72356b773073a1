package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skycast/internal/evaluation"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WEATHERBIT_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)

	assert.Equal(t, "https://api.weatherbit.io/v2.0", cfg.Weatherbit.BaseURL)
	assert.Equal(t, 16, cfg.Weatherbit.ForecastDays)
	assert.Equal(t, 10*time.Minute, cfg.Weatherbit.CurrentCacheMaxLife)
	assert.Equal(t, time.Hour, cfg.Weatherbit.ForecastCacheMaxLife)
	assert.Equal(t, "test-key", cfg.Weatherbit.APIKey.Unmask())

	assert.InDelta(t, 3.0, cfg.Evaluation.PressureBigDelta, 1e-9)
	assert.Equal(t, evaluation.CurveOptimalPeak, cfg.Evaluation.Temperature.Profile().Curve)
	assert.Equal(t, evaluation.CurveLinear, cfg.Evaluation.Pressure.Profile().Curve)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WEATHERBIT_API_KEY", "test-key")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("WEATHERBIT_FORECAST_DAYS", "7")
	t.Setenv("EVAL_TEMPERATURE_OPTIMAL", "25")
	t.Setenv("EVAL_PRESSURE_BIG_DELTA", "5.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Environment)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 7, cfg.Weatherbit.ForecastDays)
	assert.InDelta(t, 25.0, cfg.Evaluation.Temperature.Profile().OptimalValue, 1e-9)
	assert.InDelta(t, 5.5, cfg.Evaluation.PressureBigDelta, 1e-9)
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("WEATHERBIT_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validating configuration")
}

func TestLoadRejectsInvalidEnvironment(t *testing.T) {
	t.Setenv("WEATHERBIT_API_KEY", "test-key")
	t.Setenv("APP_ENV", "sandbox")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsForecastDaysOutOfRange(t *testing.T) {
	t.Setenv("WEATHERBIT_API_KEY", "test-key")

	for _, days := range []string{"1", "17"} {
		t.Setenv("WEATHERBIT_FORECAST_DAYS", days)
		_, err := Load()
		require.Error(t, err, "days=%s", days)
	}
}

func TestLoadedProfilesBuildScorers(t *testing.T) {
	t.Setenv("WEATHERBIT_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	_, err = evaluation.NewComfortScorer(
		cfg.Evaluation.Temperature.Profile(),
		cfg.Evaluation.Pressure.Profile(),
	)
	assert.NoError(t, err, "default profiles must produce valid scorers")
}

func TestLoadRejectsEqualReferencePoints(t *testing.T) {
	t.Setenv("WEATHERBIT_API_KEY", "test-key")
	t.Setenv("EVAL_TEMPERATURE_OPTIMAL", "10")
	t.Setenv("EVAL_TEMPERATURE_WORST", "10")

	cfg, err := Load()
	require.NoError(t, err, "equality is a scorer construction error, not a binding error")

	_, err = evaluation.NewComfortScorer(
		cfg.Evaluation.Temperature.Profile(),
		cfg.Evaluation.Pressure.Profile(),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "worst value cannot be equal to optimal value")
}
