package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/spotx/internal/shared"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes a starter config.toml, optionally storing an access token in it.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("%w: config file already exists at %s (use --force to overwrite)", shared.ErrInvalidArgument, configPath)
	}

	config := shared.DefaultConfig()
	if token := cmd.String("token"); token != "" {
		config.Spotify.AccessToken = token
	}
	if market := cmd.String("market"); market != "" {
		config.Spotify.Market = market
	}

	if err := shared.SaveConfig(configPath, config); err != nil {
		return err
	}

	r.logger.Info("config file written", "path", configPath)
	r.writePlain("%s Config written to %s\n", color.GreenString("✓"), configPath)
	if config.Spotify.AccessToken == "" {
		r.writePlain("Set spotify.access_token or %s before making requests\n", shared.EnvAccessToken)
	}
	return nil
}

// SetupDatabase initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", configPath)
		}
		config = shared.DefaultConfig()
	}

	if cmd.Bool("rollback") {
		return r.rollbackDatabase(config.Database)
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.OpenDatabase(config.Database)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer db.Close()

	version, err := shared.CurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	r.writePlain("%s Database ready at %s (schema version %d)\n", color.GreenString("✓"), config.Database.Path, version)
	return nil
}

func (r *Runner) rollbackDatabase(cfg shared.DatabaseConfig) error {
	db, err := shared.NewDatabase(cfg.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	if err := shared.RollbackMigration(db); err != nil {
		return err
	}

	version, err := shared.CurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	r.writePlain("Rolled back to schema version %d\n", version)
	return nil
}
