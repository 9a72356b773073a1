package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skycast/internal/core"
	"skycast/internal/types"
)

type stubWeatherService struct {
	current    *types.CurrentConditions
	currentErr error
	report     *types.ForecastReport
	reportErr  error

	lastCity string
}

func (s *stubWeatherService) CurrentWeather(_ context.Context, city string) (*types.CurrentConditions, error) {
	s.lastCity = city
	return s.current, s.currentErr
}

func (s *stubWeatherService) Forecast(_ context.Context, city string) (*types.ForecastReport, error) {
	s.lastCity = city
	return s.report, s.reportErr
}

func newTestRouter(svc WeatherServiceInterface) http.Handler {
	r := chi.NewRouter()
	handler := NewWeatherHandler(svc, nil)
	r.Route("/weather", handler.RegisterRoutes)
	return r
}

func doRequest(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) core.APIErrorResponse {
	t.Helper()
	var resp core.APIErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleCurrentSuccess(t *testing.T) {
	temp := 18.5
	wind := 3.4
	humidity := 62
	svc := &stubWeatherService{current: &types.CurrentConditions{
		Description: "Few clouds",
		Temperature: &temp,
		WindSpeed:   &wind,
		Humidity:    &humidity,
	}}
	router := newTestRouter(svc)

	rec := doRequest(t, router, "/weather/current?city=Berlin")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Berlin", svc.lastCity)

	var resp struct {
		Data types.CurrentConditions `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Few clouds", resp.Data.Description)
	require.NotNil(t, resp.Data.WindSpeed)
	assert.InDelta(t, 3.4, *resp.Data.WindSpeed, 1e-9)
}

func TestHandleCurrentMissingCity(t *testing.T) {
	svc := &stubWeatherService{}
	router := newTestRouter(svc)

	for _, target := range []string{"/weather/current", "/weather/current?city=%20%20"} {
		rec := doRequest(t, router, target)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
		resp := decodeErrorResponse(t, rec)
		assert.Equal(t, string(types.ErrCodeValidationMissingCity), resp.Error.Code)
	}
	assert.Empty(t, svc.lastCity, "service must not be called without a city")
}

func TestHandleCurrentCityNotFound(t *testing.T) {
	svc := &stubWeatherService{
		currentErr: types.NewAppError(types.ErrCodeNotFoundCity, "city Atlantis not found", nil),
	}
	router := newTestRouter(svc)

	rec := doRequest(t, router, "/weather/current?city=Atlantis")

	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeErrorResponse(t, rec)
	assert.Equal(t, string(types.ErrCodeNotFoundCity), resp.Error.Code)
	assert.Equal(t, "city Atlantis not found", resp.Error.Message)
}

func TestHandleForecastSuccess(t *testing.T) {
	svc := &stubWeatherService{report: &types.ForecastReport{
		GlobalTendency:      types.TendencyIncreasing,
		TemperatureTendency: types.TendencyConstant,
		PressureTendency:    types.BigTendencyBigDecreasing,
		WindCategory:        types.BeaufortFreshBreeze,
	}}
	router := newTestRouter(svc)

	rec := doRequest(t, router, "/weather/forecast?city=Hamburg")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, map[string]string{
		"globalTendency":      "INCREASING",
		"temperatureTendency": "CONSTANT",
		"pressureTendency":    "BIG_DECREASING",
		"windCategory":        "FRESH_BREEZE",
	}, resp.Data)
}

func TestHandleForecastUpstreamFailure(t *testing.T) {
	svc := &stubWeatherService{
		reportErr: types.NewAppError(types.ErrCodeUpstreamWeather, "weather provider unreachable after retries", nil),
	}
	router := newTestRouter(svc)

	rec := doRequest(t, router, "/weather/forecast?city=Hamburg")

	require.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decodeErrorResponse(t, rec)
	assert.Equal(t, string(types.ErrCodeUpstreamWeather), resp.Error.Code)
}

func TestHandleForecastIncompleteData(t *testing.T) {
	svc := &stubWeatherService{
		reportErr: types.NewAppError(types.ErrCodeDataIncomplete, "forecast window contains a sample missing temperature, pressure or wind speed", nil),
	}
	router := newTestRouter(svc)

	rec := doRequest(t, router, "/weather/forecast?city=Hamburg")

	require.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decodeErrorResponse(t, rec)
	assert.Equal(t, string(types.ErrCodeDataIncomplete), resp.Error.Code)
}
