package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"codeberg.org/mutker/weatherdog/internal/errors"
	"codeberg.org/mutker/weatherdog/internal/logger"
	"github.com/sony/gobreaker"
)

// Client fetches current conditions from the OpenWeather API for a single
// ZIP code. Each Current call performs a single bounded-timeout request;
// repeated provider failures trip the circuit breaker so subsequent cycles
// fail fast instead of waiting out the timeout.
type Client struct {
	cfg        Config
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

func New(cfg Config) (*Client, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}
	cfg = cfg.withDefaults()

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    breaker,
	}, nil
}

// Current performs one provider request and returns the parsed reading.
// Any failure (transport, status, body shape) comes back as a coded error;
// no partial readings are returned.
func (c *Client) Current(ctx context.Context) (Reading, error) {
	errFactory := errors.New()

	logger.Info().Str("zip_code", c.cfg.ZipCode).Msg("Fetching weather data")

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = errFactory.Wrap(ErrCircuitOpen, err)
		}
		logger.Error().Err(err).Msg("Failed to fetch weather data")
		return Reading{}, err
	}

	reading, ok := result.(Reading)
	if !ok {
		err := errFactory.New(errors.ErrInternal)
		logger.Error().Err(err).Msg("Failed to fetch weather data")
		return Reading{}, err
	}

	logger.Info().
		Float64("temperature_c", reading.Temperature).
		Float64("humidity_pct", reading.Humidity).
		Msg("Received weather data")

	return reading, nil
}

func (c *Client) fetch(ctx context.Context) (Reading, error) {
	errFactory := errors.New()

	values := url.Values{}
	values.Set("zip", c.cfg.ZipCode)
	values.Set("appid", c.cfg.APIKey)
	values.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+values.Encode(), nil)
	if err != nil {
		return Reading{}, errFactory.Wrap(ErrBuildRequest, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Reading{}, errFactory.Wrap(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Reading{}, errFactory.WithData(ErrBadStatus, resp.StatusCode)
	}

	// Pointer fields distinguish a missing value from a zero one.
	var payload struct {
		Main struct {
			Temp     *float64 `json:"temp"`
			Humidity *float64 `json:"humidity"`
		} `json:"main"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Reading{}, errFactory.Wrap(ErrDecodeFailed, err)
	}

	if payload.Main.Temp == nil {
		return Reading{}, errFactory.WithData(ErrMissingField, "main.temp")
	}
	if payload.Main.Humidity == nil {
		return Reading{}, errFactory.WithData(ErrMissingField, "main.humidity")
	}

	return Reading{
		Temperature: *payload.Main.Temp,
		Humidity:    *payload.Main.Humidity,
	}, nil
}
