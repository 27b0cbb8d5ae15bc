package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/steave-git/Streaming-Musical-Web/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	// Secrets can live in a .env file during development.
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded environment from .env")
	}

	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:     "streaming-musical",
		Usage:    "Search YouTube, build playlists and save favorites from the browser",
		Version:  "1.0.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
