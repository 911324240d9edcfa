package config

import (
	"io/fs"
	"os"
	"strings"

	"codeberg.org/mutker/weatherdog/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultInterval = 300
	DefaultLogLevel = "info"

	configEnvVar = "WEATHERDOG_CONFIG"
)

// Config holds the full runtime configuration. Credentials are sourced
// from the environment only; everything else may also come from flags or
// an optional TOML config file.
type Config struct {
	OpenWeatherAPIKey string `mapstructure:"openweather_api_key" validate:"required"`
	DatadogAPIKey     string `mapstructure:"datadog_api_key" validate:"required"`
	DatadogAppKey     string `mapstructure:"datadog_app_key" validate:"required"`
	ZipCode           string `mapstructure:"zip_code" validate:"required"`
	Interval          int    `mapstructure:"interval" validate:"gt=0"`
	LogLevel          string `mapstructure:"log_level"`
	Monitor           bool   `mapstructure:"monitor"`
	Debug             bool   `mapstructure:"debug"`
	Verbose           bool   `mapstructure:"verbose"`
}

// envBindings maps config keys to the environment variables they are
// read from. These names are the external contract of the daemon.
var envBindings = map[string]string{
	"openweather_api_key": "OPENWEATHER_API_KEY",
	"datadog_api_key":     "DATADOG_API_KEY",
	"datadog_app_key":     "DATADOG_APP_KEY",
	"zip_code":            "ZIP_CODE",
}

// fieldEnvNames maps Config struct fields to the environment variables
// reported when a required value is missing.
var fieldEnvNames = map[string]string{
	"OpenWeatherAPIKey": "OPENWEATHER_API_KEY",
	"DatadogAPIKey":     "DATADOG_API_KEY",
	"DatadogAppKey":     "DATADOG_APP_KEY",
	"ZipCode":           "ZIP_CODE",
}

// Load assembles configuration from flags, environment variables and an
// optional config file, in that order of precedence.
func Load() (*Config, error) {
	errFactory := errors.New()

	// A local .env is a convenience for development; absence is not an error.
	_ = godotenv.Load()

	fs := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	fs.Int("interval", DefaultInterval, "Seconds between weather checks")
	fs.String("log-level", "", "Log level (debug, info, warn, error)")
	fs.String("config", "", "Path to config file")
	fs.Bool("monitor", false, "Fetch and log weather data without submitting metrics")
	fs.Bool("debug", false, "Enable debugging mode")
	fs.Bool("verbose", false, "Enable verbose logging")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v := viper.New()
	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("log_level", DefaultLogLevel)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
		}
	}

	v.SetEnvPrefix("WEATHERDOG")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, fs); err != nil {
		return nil, err
	}

	// Flags that were set explicitly override everything else.
	fs.Visit(func(f *pflag.Flag) {
		v.Set(strings.ReplaceAll(f.Name, "-", "_"), f.Value.String())
	})

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

func readConfigFile(v *viper.Viper, flags *pflag.FlagSet) error {
	errFactory := errors.New()

	path, _ := flags.GetString("config")
	if path == "" {
		path = os.Getenv(configEnvVar)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("weatherdog")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// An absent config file is fine; the file is optional.
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errFactory.WithMessage(errors.ErrReadConfig, "Failed to read config file").WithData(err.Error())
	}

	return nil
}

func validate(config *Config) error {
	errFactory := errors.New()

	err := validator.New().Struct(config)
	if err == nil {
		if _, parseErr := zerolog.ParseLevel(config.LogLevel); parseErr != nil {
			return errFactory.WithData(errors.ErrInvalidLogLevel, config.LogLevel)
		}
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	for _, fieldErr := range fieldErrs {
		switch fieldErr.StructField() {
		case "Interval":
			return errFactory.WithData(errors.ErrInvalidInterval, config.Interval)
		default:
			if env, ok := fieldEnvNames[fieldErr.StructField()]; ok {
				return errFactory.WithData(errors.ErrMissingConfig, env)
			}
			return errFactory.WithData(errors.ErrMissingConfig, fieldErr.StructField())
		}
	}

	return errFactory.Wrap(errors.ErrInvalidConfig, err)
}
