package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fxwatch/fxwatch/internal/cli"
	"github.com/fxwatch/fxwatch/pkg/config"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Long-running worker commands exit cleanly on SIGINT/SIGTERM; the
	// lock-file protocol still governs cooperative stops.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(cfg, logger)
	code := app.Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
