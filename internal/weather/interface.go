package weather

import "context"

// Reading is a single observation of outside conditions. Temperature is
// Celsius (the provider is queried with metric units); humidity is a
// percentage.
type Reading struct {
	Temperature float64
	Humidity    float64
}

// Fetcher retrieves the current conditions for a fixed location. One call
// performs exactly one provider request.
type Fetcher interface {
	Current(ctx context.Context) (Reading, error)
}
