// Package weather resolves city names to coordinates and fetches current
// conditions from the Open-Meteo APIs.
//
// Every failure mode of the upstream services (timeout, non-2xx status,
// empty result set) is folded into ErrNotFound so callers fail closed to a
// user-visible "city not found" message instead of crashing a stream.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pyaichatbot/adk-demo/logging"
)

// ErrNotFound indicates the city could not be resolved or conditions could
// not be fetched; callers treat this as a degraded lookup, not a fatal error.
var ErrNotFound = errors.New("city not found")

const (
	defaultGeocodeURL  = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastURL = "https://api.open-meteo.com/v1/forecast"
	defaultTimeout     = 15 * time.Second
)

// Location is a resolved city.
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Country   string  `json:"country,omitempty"`
}

// Conditions captures the current weather at a coordinate.
type Conditions struct {
	Temperature   float64 `json:"temperature"`
	Windspeed     float64 `json:"windspeed"`
	Winddirection float64 `json:"winddirection"`
	Weathercode   int     `json:"weathercode"`
	Time          string  `json:"time"`
}

// Options configures a Client.
type Options struct {
	GeocodeURL  string
	ForecastURL string
	Timeout     time.Duration
	HTTPClient  *http.Client
	Logger      logging.Logger
}

// Client looks up city coordinates and current conditions with a bounded
// timeout per request.
type Client struct {
	http        *http.Client
	geocodeURL  string
	forecastURL string
	logger      logging.Logger
}

// NewClient constructs a Client against the public Open-Meteo endpoints
// unless overridden (tests point it at a local server).
func NewClient(optFns ...func(o *Options)) *Client {
	opts := Options{
		GeocodeURL:  defaultGeocodeURL,
		ForecastURL: defaultForecastURL,
		Timeout:     defaultTimeout,
		Logger:      logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		http:        httpClient,
		geocodeURL:  opts.GeocodeURL,
		forecastURL: opts.ForecastURL,
		logger:      opts.Logger,
	}
}

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Country   string  `json:"country"`
	} `json:"results"`
}

// Geocode resolves a city name to its best-match location. An empty result
// set, HTTP failure or non-2xx status all return ErrNotFound.
func (c *Client) Geocode(ctx context.Context, city string) (*Location, error) {
	q := url.Values{}
	q.Set("name", city)
	q.Set("count", "1")

	var resp geocodeResponse
	if err := c.getJSON(ctx, c.geocodeURL, q, &resp); err != nil {
		c.logger.Warn("geocode lookup failed", "city", city, "error", err)
		return nil, fmt.Errorf("%w: %s", ErrNotFound, city)
	}

	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, city)
	}

	res := resp.Results[0]
	return &Location{
		Name:      res.Name,
		Latitude:  res.Latitude,
		Longitude: res.Longitude,
		Country:   res.Country,
	}, nil
}

type forecastResponse struct {
	CurrentWeather struct {
		Temperature   float64 `json:"temperature"`
		Windspeed     float64 `json:"windspeed"`
		Winddirection float64 `json:"winddirection"`
		Weathercode   int     `json:"weathercode"`
		Time          string  `json:"time"`
	} `json:"current_weather"`
}

// CurrentConditions fetches current weather for a coordinate. Failures are
// folded into ErrNotFound like Geocode.
func (c *Client) CurrentConditions(ctx context.Context, lat, lon float64) (*Conditions, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("current_weather", "true")

	var resp forecastResponse
	if err := c.getJSON(ctx, c.forecastURL, q, &resp); err != nil {
		c.logger.Warn("conditions lookup failed", "lat", lat, "lon", lon, "error", err)
		return nil, fmt.Errorf("%w: conditions unavailable", ErrNotFound)
	}

	cw := resp.CurrentWeather
	return &Conditions{
		Temperature:   cw.Temperature,
		Windspeed:     cw.Windspeed,
		Winddirection: cw.Winddirection,
		Weathercode:   cw.Weathercode,
		Time:          cw.Time,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, base string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
