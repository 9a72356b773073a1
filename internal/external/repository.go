package external

import (
	"context"
	"log/slog"
	"time"

	"skycast/internal/types"
)

// CachedRepository fronts the Weatherbit client with one QueryCache per
// endpoint. It satisfies the weather service's Repository contract: the
// evaluation pipeline never talks to the provider or the caches directly.
type CachedRepository struct {
	current  *QueryCache[types.Observation]
	forecast *QueryCache[[]types.ForecastSample]
}

// NewCachedRepository wires the client's two fetch paths behind their
// caches. currentMaxLife and forecastMaxLife cap the respective entry
// lifetimes on top of the provider's rate-limit reset hints.
func NewCachedRepository(
	client *Client,
	currentMaxLife time.Duration,
	forecastMaxLife time.Duration,
	logger *slog.Logger,
) *CachedRepository {
	return &CachedRepository{
		current:  NewQueryCache("current", client.CurrentByCity, currentMaxLife, logger),
		forecast: NewQueryCache("forecast", client.ForecastByCity, forecastMaxLife, logger),
	}
}

// CurrentByCity returns the current observation for a city, cached.
func (r *CachedRepository) CurrentByCity(ctx context.Context, city string) (types.Observation, error) {
	return r.current.Get(ctx, city)
}

// ForecastByCity returns the daily forecast window for a city, cached.
func (r *CachedRepository) ForecastByCity(ctx context.Context, city string) ([]types.ForecastSample, error) {
	return r.forecast.Get(ctx, city)
}
