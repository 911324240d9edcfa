package metrics

import (
	"time"

	"codeberg.org/mutker/weatherdog/internal/errors"
)

const defaultTimeout = 10 * time.Second

type Config struct {
	APIKey  string
	AppKey  string
	Timeout time.Duration

	// Enabled false swaps in a no-op submitter; fetched readings are
	// logged but never leave the process.
	Enabled bool
}

func (c Config) Validate() error {
	errFactory := errors.New()

	if c.Enabled && (c.APIKey == "" || c.AppKey == "") {
		return errFactory.New(ErrMissingCredentials)
	}

	return nil
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}

	return c
}
