package metrics

import (
	"context"
	"time"

	"codeberg.org/mutker/weatherdog/internal/weather"
)

// Gauge metric names for the published readings.
const (
	MetricTemperature = "environment.temperature.outside"
	MetricHumidity    = "environment.humidity.outside"
)

// Publisher submits a reading to the monitoring backend as gauge metrics.
// Submission is best effort; the returned error reports what failed so the
// caller can log it and carry on.
type Publisher interface {
	Publish(ctx context.Context, reading weather.Reading) error
}

// Point is a single gauge sample.
type Point struct {
	Name      string
	Timestamp time.Time
	Value     float64
}

// Submitter sends one gauge point to the backend. One call, one submission;
// there is no batching across points.
type Submitter interface {
	Submit(point Point) error
}
