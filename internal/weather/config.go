package weather

import (
	"time"

	"codeberg.org/mutker/weatherdog/internal/errors"
)

const (
	defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	defaultTimeout = 10 * time.Second
)

type Config struct {
	APIKey  string
	ZipCode string
	BaseURL string
	Timeout time.Duration
}

func (c Config) Validate() error {
	errFactory := errors.New()

	if c.APIKey == "" {
		return errFactory.New(ErrMissingAPIKey)
	}
	if c.ZipCode == "" {
		return errFactory.New(ErrMissingZip)
	}

	return nil
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}

	return c
}
