package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/i474232898/weather-forecast-recorder/internal/weather"
)

// DefaultOpenMeteoURL is the public Open-Meteo forecast endpoint.
const DefaultOpenMeteoURL = "https://api.open-meteo.com/v1/forecast"

// The forecast location and variables are fixed; only the endpoint is configurable.
const (
	forecastLatitude  = "50.4375"
	forecastLongitude = "30.5"
	currentVariables  = "temperature_2m,wind_speed_10m"
	hourlyVariables   = "temperature_2m,relative_humidity_2m,wind_speed_10m"
)

// OpenMeteoFetcher implements the weather.Fetcher interface for Open-Meteo.
type OpenMeteoFetcher struct {
	client  *http.Client
	baseURL string
}

// NewOpenMeteoFetcher creates a fetcher. An empty baseURL selects DefaultOpenMeteoURL.
func NewOpenMeteoFetcher(client *http.Client, baseURL string) *OpenMeteoFetcher {
	if baseURL == "" {
		baseURL = DefaultOpenMeteoURL
	}
	return &OpenMeteoFetcher{
		client:  client,
		baseURL: baseURL,
	}
}

// ForecastURL returns the full request URL including the fixed query.
func (f *OpenMeteoFetcher) ForecastURL() string {
	values := url.Values{}
	values.Set("latitude", forecastLatitude)
	values.Set("longitude", forecastLongitude)
	values.Set("current", currentVariables)
	values.Set("hourly", hourlyVariables)

	return fmt.Sprintf("%s?%s", f.baseURL, values.Encode())
}

// FetchForecast issues a single GET and decodes the response.
// It sets no deadline of its own; ctx carries the invocation deadline.
func (f *OpenMeteoFetcher) FetchForecast(ctx context.Context) (*weather.ForecastResponse, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, f.ForecastURL(), nil)
	}

	body, err := doRequest(ctx, f.client, buildRequest)
	if err != nil {
		return nil, weather.NewError(weather.KindNetwork, "fetch forecast", err)
	}

	var payload weather.ForecastResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, weather.NewError(weather.KindParse, "decode forecast", err)
	}
	if err := payload.Validate(); err != nil {
		return nil, weather.NewError(weather.KindParse, "decode forecast", err)
	}

	return &payload, nil
}

var _ weather.Fetcher = (*OpenMeteoFetcher)(nil)
