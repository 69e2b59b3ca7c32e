package services

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/hpungsan/darek/internal/errors"
)

// Weather is the current conditions for a city.
type Weather struct {
	City        string  `json:"city"`
	Description string  `json:"description"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
}

// WeatherClient queries an OpenWeatherMap-compatible endpoint in metric units.
type WeatherClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewWeatherClient creates a weather client. An empty apiKey is reported per call.
func NewWeatherClient(baseURL, apiKey string, hc *http.Client) *WeatherClient {
	return &WeatherClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: newHTTPClient(hc),
	}
}

type owmResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Current returns the current weather for city.
func (c *WeatherClient) Current(ctx context.Context, city string) (*Weather, error) {
	if c.apiKey == "" {
		return nil, errors.NewServiceNotConfigured(ServiceWeather, "WEATHER_API_KEY")
	}

	var body owmResponse
	status, err := getJSON(ctx, c.httpClient, ServiceWeather, c.baseURL, url.Values{
		"q":     {city},
		"appid": {c.apiKey},
		"units": {"metric"},
	}, &body)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, statusError(ServiceWeather, city, status)
	}

	w := &Weather{
		City:        city,
		Temperature: body.Main.Temp,
		FeelsLike:   body.Main.FeelsLike,
		Humidity:    body.Main.Humidity,
		WindSpeed:   body.Wind.Speed,
	}
	if len(body.Weather) > 0 {
		w.Description = body.Weather[0].Description
	}
	return w, nil
}
