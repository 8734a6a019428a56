package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/shelf/internal/shared"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

const version = "0.1.0"

func main() {
	_ = godotenv.Load(".env")

	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:     "shelf",
		Usage:    "Keep a personal library catalog in a JSON file",
		Version:  version,
		Flags:    globalFlags(),
		Before:   runner.Configure,
		Commands: runner.register(),
	}

	if err := app.Run(ctx, os.Args); err != nil {
		stop()
		if errors.Is(err, shared.ErrBookNotFound) {
			logger.Warn(err.Error())
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}
