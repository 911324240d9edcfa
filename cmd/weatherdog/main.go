package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/mutker/weatherdog/internal/config"
	"codeberg.org/mutker/weatherdog/internal/logger"
	"codeberg.org/mutker/weatherdog/internal/metrics"
	"codeberg.org/mutker/weatherdog/internal/pid"
	"codeberg.org/mutker/weatherdog/internal/poller"
	"codeberg.org/mutker/weatherdog/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init(false, true, logger.IsService())
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	if !cfg.Debug && !cfg.Verbose {
		if err := logger.SetLogLevelFromName(cfg.LogLevel); err != nil {
			logger.Fatal().Err(err).Msg("Invalid configuration")
		}
	}

	fetcher, err := weather.New(weather.Config{
		APIKey:  cfg.OpenWeatherAPIKey,
		ZipCode: cfg.ZipCode,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize weather client")
	}

	publisher, err := metrics.NewService(metrics.Config{
		APIKey:  cfg.DatadogAPIKey,
		AppKey:  cfg.DatadogAppKey,
		Enabled: !cfg.Monitor,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize metrics publisher")
	}

	controller, err := poller.New(fetcher, publisher, time.Duration(cfg.Interval)*time.Second)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize poller")
	}

	if err := pid.Write(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to write PID file")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	logger.Info().
		Str("zip_code", cfg.ZipCode).
		Int("interval_seconds", cfg.Interval).
		Bool("monitor", cfg.Monitor).
		Msg("Starting weather monitoring service")

	if err := controller.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("Error in main loop")
	}

	if err := pid.Remove(); err != nil {
		logger.Warn().Err(err).Msg("Failed to remove PID file")
	}

	logger.Info().Msg("Weather monitoring service stopped")
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received shutdown signal, stopping...")
	cancel()
}
