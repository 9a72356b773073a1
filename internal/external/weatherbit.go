// Package external is the anti-corruption layer between skycast domain logic
// and the upstream weather provider. All outbound HTTP calls go through the
// Client, which enforces consistent resilience patterns: circuit breaking,
// bounded retries with backoff, and error mapping onto the domain taxonomy.
// The QueryCache in this package keeps provider responses (and recorded
// failures) for the lifetime the provider's rate-limit headers allow.
package external

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"skycast/internal/types"
)

// rateLimitResetHeader carries the unix timestamp (seconds) at which the
// provider's rate-limit window resets. It doubles as the cache-expiry hint.
const rateLimitResetHeader = "X-RateLimit-Reset"

// cityNotFoundMarker is the body fragment the provider returns on HTTP 400
// when the requested city does not resolve to a location.
const cityNotFoundMarker = "No Location Found"

// RetryPolicy configures the retry behavior for upstream calls.
type RetryPolicy struct {
	MaxRetries int
	MinWait    time.Duration
	MaxWait    time.Duration
}

// DefaultRetryPolicy returns sensible defaults for the weather provider.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 2,
		MinWait:    250 * time.Millisecond,
		MaxWait:    2 * time.Second,
	}
}

// Client is the Weatherbit API client. It wraps an *http.Client with a typed
// circuit breaker and retries transient (5xx / transport) failures before
// giving up. Client-level outcomes (city not found, rate limited) are mapped
// to AppError values, never retried.
type Client struct {
	httpClient   *http.Client
	breaker      *gobreaker.CircuitBreaker[*http.Response]
	baseURL      string
	apiKey       types.SecretString
	forecastDays int
	retryPolicy  RetryPolicy
	logger       *slog.Logger
	sleepFn      func(time.Duration) // injectable for tests
	now          func() time.Time
}

// ClientOption is a functional option for configuring a Client.
type ClientOption func(*Client)

// WithRetryPolicy overrides the default retry policy.
func WithRetryPolicy(p RetryPolicy) ClientOption {
	return func(c *Client) { c.retryPolicy = p }
}

// WithSleepFunc overrides the sleep between retries. Intended for tests.
func WithSleepFunc(fn func(time.Duration)) ClientOption {
	return func(c *Client) { c.sleepFn = fn }
}

// WithClock overrides the clock used for date defaulting. Intended for tests.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) { c.now = now }
}

// NewClient creates a Weatherbit client. forecastDays is the window length
// requested from the daily-forecast endpoint.
func NewClient(
	httpClient *http.Client,
	baseURL string,
	apiKey types.SecretString,
	forecastDays int,
	logger *slog.Logger,
	opts ...ClientOption,
) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        "weatherbit",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	c := &Client{
		httpClient:   httpClient,
		breaker:      cb,
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       apiKey,
		forecastDays: forecastDays,
		retryPolicy:  DefaultRetryPolicy(),
		logger:       logger,
		sleepFn:      time.Sleep,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CurrentByCity fetches the current observation for a city. The returned
// time is the provider's rate-limit reset hint (zero when absent); it is
// valid alongside a non-nil error so failures can be cached until the
// provider would accept a new request.
func (c *Client) CurrentByCity(ctx context.Context, city string) (types.Observation, time.Time, error) {
	body, header, status, err := c.get(ctx, "/current", url.Values{"city": {city}})
	resetAt := rateLimitReset(header)
	if err != nil {
		return types.Observation{}, resetAt, err
	}
	if status != http.StatusOK {
		return types.Observation{}, resetAt, c.mapFailure(status, body, city)
	}

	var group currentObsGroup
	if err := json.Unmarshal(body, &group); err != nil {
		return types.Observation{}, resetAt, types.NewAppError(
			types.ErrCodeUpstreamWeather,
			"not able to decode current weather response",
			err,
		)
	}
	if group.Data == nil {
		return types.Observation{}, resetAt, types.NewAppError(
			types.ErrCodeUpstreamWeather,
			"not able to retrieve current weather, no data found",
			nil,
		)
	}
	if len(group.Data) != 1 {
		return types.Observation{}, resetAt, types.NewAppError(
			types.ErrCodeUpstreamWeather,
			fmt.Sprintf("not able to retrieve current weather, expected one observation, got %d", len(group.Data)),
			nil,
		)
	}
	return group.Data[0].toObservation(), resetAt, nil
}

// ForecastByCity fetches the daily forecast window for a city. The provider
// answers an unknown city with 204 No Content on this endpoint.
func (c *Client) ForecastByCity(ctx context.Context, city string) ([]types.ForecastSample, time.Time, error) {
	query := url.Values{
		"city": {city},
		"days": {strconv.Itoa(c.forecastDays)},
	}
	body, header, status, err := c.get(ctx, "/forecast/daily", query)
	resetAt := rateLimitReset(header)
	if err != nil {
		return nil, resetAt, err
	}
	if status == http.StatusNoContent {
		return nil, resetAt, types.NewAppError(
			types.ErrCodeNotFoundCity,
			fmt.Sprintf("city %s not found", city),
			nil,
		)
	}
	if status != http.StatusOK {
		return nil, resetAt, c.mapFailure(status, body, city)
	}

	var day forecastDay
	if err := json.Unmarshal(body, &day); err != nil {
		return nil, resetAt, types.NewAppError(
			types.ErrCodeUpstreamWeather,
			"not able to decode weather forecast response",
			err,
		)
	}
	if day.Data == nil {
		return nil, resetAt, types.NewAppError(
			types.ErrCodeUpstreamWeather,
			"not able to retrieve weather forecast, no data found",
			nil,
		)
	}

	samples := make([]types.ForecastSample, 0, len(day.Data))
	for _, entry := range day.Data {
		sample, err := entry.toSample(c.now)
		if err != nil {
			return nil, resetAt, types.NewAppError(
				types.ErrCodeUpstreamWeather,
				fmt.Sprintf("not able to parse forecast date %q", entry.Datetime),
				err,
			)
		}
		samples = append(samples, sample)
	}
	return samples, resetAt, nil
}

// get performs a GET against the provider with the API key attached,
// wrapped in the circuit breaker and retried on 5xx and transport errors.
// It returns the response body, headers and status; callers map non-200
// statuses to domain errors.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values) ([]byte, http.Header, int, error) {
	query.Set("key", c.apiKey.Unmask())
	reqURL := c.baseURL + endpoint + "?" + query.Encode()

	var lastErr error
	maxAttempts := 1 + c.retryPolicy.MaxRetries
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			c.sleepFn(c.backoff(attempt))
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, nil, 0, types.NewAppError(
				types.ErrCodeInternalUnexpected,
				"not able to build upstream request",
				err,
			)
		}

		resp, err := c.breaker.Execute(func() (*http.Response, error) {
			r, doErr := c.httpClient.Do(req)
			if doErr != nil {
				return nil, doErr
			}
			// 5xx counts against the breaker and is retried.
			if r.StatusCode >= 500 {
				return r, fmt.Errorf("upstream returned %d", r.StatusCode)
			}
			return r, nil
		})
		if err != nil {
			if resp != nil {
				resp.Body.Close()
			}
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return nil, nil, 0, types.NewAppError(
					types.ErrCodeUpstreamWeather,
					"weather provider circuit breaker is open",
					err,
				)
			}
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}
		return body, resp.Header, resp.StatusCode, nil
	}

	return nil, nil, 0, types.NewAppError(
		types.ErrCodeUpstreamWeather,
		"weather provider unreachable after retries",
		lastErr,
	)
}

// backoff returns the exponential wait before the given attempt (1-based),
// capped at MaxWait.
func (c *Client) backoff(attempt int) time.Duration {
	wait := c.retryPolicy.MinWait << (attempt - 1)
	if wait > c.retryPolicy.MaxWait {
		wait = c.retryPolicy.MaxWait
	}
	return wait
}

// mapFailure translates a non-success provider status into a domain error.
func (c *Client) mapFailure(status int, body []byte, city string) *types.AppError {
	switch {
	case status == http.StatusBadRequest && strings.Contains(string(body), cityNotFoundMarker):
		return types.NewAppError(
			types.ErrCodeNotFoundCity,
			fmt.Sprintf("city %s not found", city),
			nil,
		)
	case status == http.StatusTooManyRequests:
		return types.NewAppError(
			types.ErrCodeUpstreamRateLimited,
			"weather provider rate limit exceeded",
			nil,
		)
	default:
		return types.NewAppError(
			types.ErrCodeUpstreamWeather,
			fmt.Sprintf("weather provider returned status %d", status),
			nil,
		)
	}
}

// rateLimitReset parses the provider's rate-limit reset header into a time.
// Returns the zero time when the header is absent or malformed.
func rateLimitReset(header http.Header) time.Time {
	if header == nil {
		return time.Time{}
	}
	raw := header.Get(rateLimitResetHeader)
	if raw == "" {
		return time.Time{}
	}
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(secs, 0)
}
