// Package handlers contains the HTTP handler implementations for the
// skycast API:
//   - Current conditions (GET /v1/weather/current)
//   - Evaluated forecast (GET /v1/weather/forecast)
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"skycast/internal/core"
	"skycast/internal/types"
)

// WeatherServiceInterface defines the service contract for the weather
// handler. It matches the weather package's Service but is declared locally
// to keep the handler decoupled and mockable.
type WeatherServiceInterface interface {
	CurrentWeather(ctx context.Context, city string) (*types.CurrentConditions, error)
	Forecast(ctx context.Context, city string) (*types.ForecastReport, error)
}

// WeatherHandler maps HTTP requests to weather service calls.
type WeatherHandler struct {
	service WeatherServiceInterface
	logger  *slog.Logger
}

// NewWeatherHandler creates a WeatherHandler.
func NewWeatherHandler(svc WeatherServiceInterface, logger *slog.Logger) *WeatherHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WeatherHandler{
		service: svc,
		logger:  logger,
	}
}

// RegisterRoutes mounts the weather endpoints onto the router.
func (h *WeatherHandler) RegisterRoutes(r chi.Router) {
	r.Get("/current", h.HandleCurrent)
	r.Get("/forecast", h.HandleForecast)
}

// HandleCurrent handles GET /v1/weather/current?city=<name>.
func (h *WeatherHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	city, ok := cityParam(w, r)
	if !ok {
		return
	}

	conditions, err := h.service.CurrentWeather(r.Context(), city)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: conditions})
}

// HandleForecast handles GET /v1/weather/forecast?city=<name>.
func (h *WeatherHandler) HandleForecast(w http.ResponseWriter, r *http.Request) {
	city, ok := cityParam(w, r)
	if !ok {
		return
	}

	report, err := h.service.Forecast(r.Context(), city)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: report})
}

// cityParam extracts and validates the city query parameter, writing the
// error response itself when the parameter is missing or blank.
func cityParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		core.Error(w, r, types.NewAppError(
			types.ErrCodeValidationMissingCity,
			"city query parameter is required",
			nil,
		))
		return "", false
	}
	return city, true
}
