package main

import (
	"context"
	"errors"
	"os"

	"github.com/mediadirect/mediadirect/internal/services"
	"github.com/mediadirect/mediadirect/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	host := services.NewMediaHostService(config.Host.BaseURL, config.Host.SessionToken, config.Host.RateLimit)

	runner := NewRunner(RunnerOpts{
		Config: config,
		Host:   host,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "mediadirect",
		Usage:    "Synchronize submitted media with the remote hosting service",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
