package weather_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"codeberg.org/mutker/weatherdog/internal/errors"
	"codeberg.org/mutker/weatherdog/internal/weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, baseURL string) *weather.Client {
	t.Helper()

	client, err := weather.New(weather.Config{
		APIKey:  "test-key",
		ZipCode: "10001",
		BaseURL: baseURL,
	})
	require.NoError(t, err)

	return client
}

func TestCurrent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10001", r.URL.Query().Get("zip"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"main":{"temp":21.5,"humidity":63,"pressure":1013}}`))
	}))
	defer server.Close()

	client := newClient(t, server.URL)

	reading, err := client.Current(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 21.5, reading.Temperature, 0.001)
	assert.InDelta(t, 63.0, reading.Humidity, 0.001)
}

func TestCurrentErrorStatus(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		http.Error(w, `{"cod":401,"message":"Invalid API key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newClient(t, server.URL)

	_, err := client.Current(context.Background())
	require.Error(t, err)
	assert.Equal(t, weather.ErrBadStatus, errors.CodeOf(err))
	assert.Equal(t, int32(1), requests.Load(), "Expected exactly one attempt per call")
}

func TestCurrentMissingHumidity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"main":{"temp":21.5}}`))
	}))
	defer server.Close()

	client := newClient(t, server.URL)

	_, err := client.Current(context.Background())
	require.Error(t, err)
	assert.Equal(t, weather.ErrMissingField, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "main.humidity")
}

func TestCurrentMissingTemp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"main":{"humidity":63}}`))
	}))
	defer server.Close()

	client := newClient(t, server.URL)

	_, err := client.Current(context.Background())
	require.Error(t, err)
	assert.Equal(t, weather.ErrMissingField, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "main.temp")
}

func TestCurrentUndecodableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := newClient(t, server.URL)

	_, err := client.Current(context.Background())
	require.Error(t, err)
	assert.Equal(t, weather.ErrDecodeFailed, errors.CodeOf(err))
}

func TestCurrentTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := newClient(t, baseURL)

	_, err := client.Current(context.Background())
	require.Error(t, err)
	assert.Equal(t, weather.ErrRequestFailed, errors.CodeOf(err))
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := weather.New(weather.Config{ZipCode: "10001"})
	require.Error(t, err)

	_, err = weather.New(weather.Config{APIKey: "test-key"})
	require.Error(t, err)
}
