package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/forecastd/forecastd/internal/weather"
)

// DefaultBaseURL is the OpenWeatherMap daily-forecast endpoint.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/forecast/daily"

// OpenWeatherProvider fetches the multi-day forecast from OpenWeatherMap.
// One request per call, no retries: the breaker only short-circuits calls
// while the upstream is failing, and the rate limiter keeps us inside the
// free-tier call budget.
type OpenWeatherProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	limiter *rate.Limiter
}

func NewOpenWeatherProvider(client *http.Client, apiKey, baseURL string) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 1,
		Interval:    5 * time.Minute,
		Timeout:     10 * time.Minute,
	})
	return &OpenWeatherProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		circuit: cb,
		limiter: rate.NewLimiter(rate.Limit(1), 5),
	}
}

// Fetch issues a single GET for the forecast identified by q and returns the
// raw response body. Transport failures map to ErrNetwork, non-2xx responses
// to ErrServer and an empty body to ErrEmptyResponse.
func (p *OpenWeatherProvider) Fetch(ctx context.Context, q weather.Query) ([]byte, error) {
	if p.apiKey == "" {
		return nil, errors.New("openweather api key is not configured")
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrNetwork, err)
	}

	values := url.Values{}
	if q.Latitude != nil && q.Longitude != nil {
		values.Set("lat", strconv.FormatFloat(*q.Latitude, 'f', -1, 64))
		values.Set("lon", strconv.FormatFloat(*q.Longitude, 'f', -1, 64))
	} else {
		values.Set("q", q.LocationSetting)
	}
	values.Set("mode", "json")
	values.Set("units", "metric")
	values.Set("cnt", strconv.Itoa(q.Days))
	values.Set("APPID", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}

	result, err := p.circuit.Execute(func() (interface{}, error) {
		resp, err := p.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", weather.ErrNetwork, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			io.Copy(io.Discard, resp.Body)
			return nil, fmt.Errorf("%w: status %d", weather.ErrServer, resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", weather.ErrNetwork, err)
		}
		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", weather.ErrServer, err)
		}
		return nil, err
	}

	body := result.([]byte)
	if len(body) == 0 {
		return nil, weather.ErrEmptyResponse
	}
	return body, nil
}
