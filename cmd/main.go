package main

import (
	"context"
	"errors"
	"os"

	"feedsync/internal/shared"

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

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "feedsync",
		Usage:    "Create tasks from music release and video channel feeds",
		Version:  "0.2.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrSourcesFailed) {
			logger.Fatalf("sync finished with failures: %v", err)
		}
		logger.Fatalf("application error: %v", err)
	}
}
