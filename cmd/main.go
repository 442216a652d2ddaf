package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/spotx/internal/repositories"
	"github.com/desertthunder/spotx/internal/services"
	"github.com/desertthunder/spotx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	if err := shared.LoadEnv(); err != nil {
		logger.Warn("failed to load .env", "error", err)
	}

	configPath := shared.ConfigPath("config.toml")
	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "path", configPath, "error", err)
		}
	}
	shared.ApplyEnv(config)
	shared.SetLogLevel(logger, shared.ParseLogLevel(config.Logging.Level))

	var history *repositories.RequestLogRepository
	if config.History.Enabled {
		if db, err := shared.OpenDatabase(config.Database); err == nil {
			defer db.Close()
			history = repositories.NewRequestLogRepository(db)
		} else {
			logger.Warn("request history disabled", "error", err)
		}
	}

	apiOpts := services.APIServiceOpts{
		BaseURL: config.Spotify.BaseURL,
		Token:   config.Spotify.AccessToken,
		Timeout: config.Spotify.Timeout(),
		Logger:  shared.WithLogger(logger, "service", "spotify"),
	}
	if history != nil {
		apiOpts.Recorder = history
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		API:        services.NewAPIService(apiOpts),
		History:    history,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "spotx",
		Usage:    "Spotify Web API client",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
