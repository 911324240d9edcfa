package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/weatherdog/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OPENWEATHER_API_KEY", "ow-key")
	t.Setenv("DATADOG_API_KEY", "dd-api-key")
	t.Setenv("DATADOG_APP_KEY", "dd-app-key")
	t.Setenv("ZIP_CODE", "10001")
	t.Setenv("WEATHERDOG_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
}

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	os.Args = append([]string{"weatherdog"}, args...)
	t.Cleanup(func() { os.Args = oldArgs })
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)
	setArgs(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "ow-key", cfg.OpenWeatherAPIKey)
	assert.Equal(t, "dd-api-key", cfg.DatadogAPIKey)
	assert.Equal(t, "dd-app-key", cfg.DatadogAppKey)
	assert.Equal(t, "10001", cfg.ZipCode)
	assert.Equal(t, config.DefaultInterval, cfg.Interval, "Expected default interval")
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel, "Expected default log level")
	assert.False(t, cfg.Monitor, "Expected Monitor false")
}

func TestLoadMissingCredential(t *testing.T) {
	required := []string{
		"OPENWEATHER_API_KEY",
		"DATADOG_API_KEY",
		"DATADOG_APP_KEY",
		"ZIP_CODE",
	}

	for _, name := range required {
		t.Run(name, func(t *testing.T) {
			setRequiredEnv(t)
			setArgs(t)
			t.Setenv(name, "")

			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "Missing configuration")
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	setRequiredEnv(t)
	setArgs(t)

	configContent := []byte(`
interval = 60
log_level = "debug"
monitor = true
`)
	configPath := filepath.Join(t.TempDir(), "weatherdog.toml")
	err := os.WriteFile(configPath, configContent, 0o600)
	require.NoError(t, err)

	t.Setenv("WEATHERDOG_CONFIG", configPath)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Interval, "Expected Interval 60")
	assert.Equal(t, "debug", cfg.LogLevel, "Expected LogLevel debug")
	assert.True(t, cfg.Monitor, "Expected Monitor true")
}

func TestLoadMissingConfigFileIgnored(t *testing.T) {
	setRequiredEnv(t)
	setArgs(t, "--config", filepath.Join(t.TempDir(), "nowhere.toml"))

	cfg, err := config.Load()
	require.NoError(t, err, "An absent config file must not be an error")
	assert.Equal(t, config.DefaultInterval, cfg.Interval)
}

func TestLoadConfigFileInvalidFormat(t *testing.T) {
	setRequiredEnv(t)
	setArgs(t)

	configContent := []byte(`
This is not a valid TOML file
`)
	configPath := filepath.Join(t.TempDir(), "weatherdog.toml")
	err := os.WriteFile(configPath, configContent, 0o600)
	require.NoError(t, err)

	t.Setenv("WEATHERDOG_CONFIG", configPath)

	_, err = config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to read config file")
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	setRequiredEnv(t)

	configContent := []byte(`
interval = 60
`)
	configPath := filepath.Join(t.TempDir(), "weatherdog.toml")
	err := os.WriteFile(configPath, configContent, 0o600)
	require.NoError(t, err)

	t.Setenv("WEATHERDOG_CONFIG", configPath)
	setArgs(t, "--interval", "30", "--log-level", "debug", "--monitor")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Interval, "Expected flag to override config file")
	assert.Equal(t, "debug", cfg.LogLevel, "Expected LogLevel set by flag")
	assert.True(t, cfg.Monitor, "Expected Monitor set by flag")
}

func TestInvalidInterval(t *testing.T) {
	setRequiredEnv(t)
	setArgs(t, "--interval", "0")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid interval")
}

func TestInvalidLogLevel(t *testing.T) {
	setRequiredEnv(t)
	setArgs(t, "--log-level", "noisy")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid log level")
}
