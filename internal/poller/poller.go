package poller

import (
	"context"
	"time"

	"codeberg.org/mutker/weatherdog/internal/errors"
	"codeberg.org/mutker/weatherdog/internal/logger"
	"codeberg.org/mutker/weatherdog/internal/metrics"
	"codeberg.org/mutker/weatherdog/internal/weather"
)

// Controller owns the polling cadence: fetch, publish, wait, repeat.
// Cancellation is observed at the top of each cycle and during the
// inter-cycle wait; a started fetch/publish pair always runs to
// completion.
type Controller struct {
	fetcher   weather.Fetcher
	publisher metrics.Publisher
	interval  time.Duration
}

func New(fetcher weather.Fetcher, publisher metrics.Publisher, interval time.Duration) (*Controller, error) {
	errFactory := errors.New()

	if fetcher == nil || publisher == nil {
		return nil, errFactory.New(errors.ErrInvalidArgument)
	}
	if interval <= 0 {
		return nil, errFactory.WithData(errors.ErrInvalidInterval, interval)
	}

	return &Controller{
		fetcher:   fetcher,
		publisher: publisher,
		interval:  interval,
	}, nil
}

// Run executes cycles until ctx is cancelled. No error from a single
// cycle terminates the loop; Run only returns once shutdown is requested.
func (c *Controller) Run(ctx context.Context) error {
	logger.Info().Dur("interval", c.interval).Msg("Starting weather polling loop")

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Shutdown requested, stopping polling loop")
			return nil
		default:
		}

		c.cycle()

		logger.Debug().Dur("interval", c.interval).Msg("Waiting until next check")

		timer := time.NewTimer(c.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info().Msg("Shutdown requested, stopping polling loop")
			return nil
		case <-timer.C:
		}
	}
}

func (c *Controller) cycle() {
	// In-flight work is never aborted by shutdown, so the cycle runs
	// against its own context; the HTTP clients carry their own timeouts.
	ctx := context.Background()

	reading, err := c.fetcher.Current(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Skipping metric submission: weather fetch failed")
		return
	}

	if err := c.publisher.Publish(ctx, reading); err != nil {
		logger.Error().Err(err).Msg("Metric submission failed")
	}
}
