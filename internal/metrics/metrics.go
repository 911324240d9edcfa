package metrics

import (
	"context"
	"time"

	"codeberg.org/mutker/weatherdog/internal/errors"
	"codeberg.org/mutker/weatherdog/internal/logger"
	"codeberg.org/mutker/weatherdog/internal/weather"
)

type service struct {
	submitter Submitter
}

func NewService(cfg Config) (Publisher, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}
	cfg = cfg.withDefaults()

	if !cfg.Enabled {
		logger.Debug().Msg("Metric submission disabled, using no-op submitter")
		return &service{submitter: &noopSubmitter{}}, nil
	}

	return &service{submitter: newDatadogSubmitter(cfg)}, nil
}

// Publish submits one gauge point per reading field. The two submissions
// are independent: a failure of the first never prevents the second, and
// all failures are reported together.
func (s *service) Publish(ctx context.Context, reading weather.Reading) error {
	errFactory := errors.New()

	if err := ctx.Err(); err != nil {
		return errFactory.Wrap(ErrCancelled, err)
	}

	now := time.Now()
	points := []Point{
		{Name: MetricTemperature, Timestamp: now, Value: reading.Temperature},
		{Name: MetricHumidity, Timestamp: now, Value: reading.Humidity},
	}

	var errs []error
	for _, point := range points {
		if err := s.submitter.Submit(point); err != nil {
			logger.Error().
				Str("metric", point.Name).
				Err(err).
				Msg("Failed to submit metric")
			errs = append(errs, err)
			continue
		}

		logger.Info().
			Str("metric", point.Name).
			Float64("value", point.Value).
			Msg("Submitted metric")
	}

	if len(errs) > 0 {
		return errFactory.Wrap(ErrSubmitFailed, errors.Join(errs...))
	}

	return nil
}

// No-op implementation
type noopSubmitter struct{}

func (*noopSubmitter) Submit(_ Point) error {
	return nil
}
