package metrics

import (
	"net/http"

	"codeberg.org/mutker/weatherdog/internal/errors"
	datadog "gopkg.in/zorkian/go-datadog-api.v2"
)

const gaugeType = "gauge"

// datadogSubmitter posts each point as a one-metric gauge series,
// authenticated with the API/application key pair.
type datadogSubmitter struct {
	client *datadog.Client
}

func newDatadogSubmitter(cfg Config) *datadogSubmitter {
	client := datadog.NewClient(cfg.APIKey, cfg.AppKey)
	client.HttpClient = &http.Client{Timeout: cfg.Timeout}

	return &datadogSubmitter{client: client}
}

func (d *datadogSubmitter) Submit(point Point) error {
	errFactory := errors.New()

	// Datadog wants (epoch seconds, value) pairs as floats.
	timestamp := float64(point.Timestamp.Unix())

	series := []datadog.Metric{{
		Metric: datadog.String(point.Name),
		Type:   datadog.String(gaugeType),
		Points: []datadog.DataPoint{
			{datadog.Float64(timestamp), datadog.Float64(point.Value)},
		},
	}}

	if err := d.client.PostMetrics(series); err != nil {
		return errFactory.Wrap(ErrSubmitFailed, err)
	}

	return nil
}
