// Package weather implements the evaluation pipeline façade: it delegates
// data retrieval to the repository (cache + upstream client), projects
// current observations onto the response shape, and runs the forecast
// aggregation. Expected domain outcomes -- city not found, upstream failure,
// incomplete data -- are returned as AppError values, never panics.
package weather

import (
	"context"
	"log/slog"

	"skycast/internal/evaluation"
	"skycast/internal/types"
)

// Repository is the external collaborator contract. Implementations must
// guarantee at-most-one in-flight upstream fetch per city under concurrent
// callers; the service consumes it synchronously, one call per request.
type Repository interface {
	CurrentByCity(ctx context.Context, city string) (types.Observation, error)
	ForecastByCity(ctx context.Context, city string) ([]types.ForecastSample, error)
}

// Service is the weather evaluation pipeline.
type Service struct {
	repo       Repository
	aggregator *evaluation.Aggregator
	logger     *slog.Logger
}

// NewService creates a Service.
func NewService(repo Repository, aggregator *evaluation.Aggregator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		aggregator: aggregator,
		logger:     logger,
	}
}

// CurrentWeather returns the current conditions for a city.
func (s *Service) CurrentWeather(ctx context.Context, city string) (*types.CurrentConditions, error) {
	obs, err := s.repo.CurrentByCity(ctx, city)
	if err != nil {
		return nil, err
	}
	return projectCurrent(obs), nil
}

// Forecast returns the evaluated forecast report for a city.
func (s *Service) Forecast(ctx context.Context, city string) (*types.ForecastReport, error) {
	window, err := s.repo.ForecastByCity(ctx, city)
	if err != nil {
		return nil, err
	}
	report, err := s.aggregator.Aggregate(window)
	if err != nil {
		s.logger.Warn("forecast aggregation failed",
			"city", city,
			"window_size", len(window),
			"error", err,
		)
		return nil, err
	}
	return report, nil
}

// projectCurrent maps an upstream observation onto the response DTO. This is
// a unit passthrough: wind speed stays in m/s, the canonical unit on both
// the current and forecast paths.
func projectCurrent(obs types.Observation) *types.CurrentConditions {
	out := &types.CurrentConditions{
		Temperature: obs.Temperature,
		WindSpeed:   obs.WindSpeed,
		Humidity:    obs.Humidity,
	}
	if obs.Description != nil {
		out.Description = *obs.Description
	}
	return out
}
