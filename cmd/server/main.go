package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/tuktask/internal/buildinfo"
	"github.com/dmitrijs2005/tuktask/internal/logging"
	"github.com/dmitrijs2005/tuktask/internal/server"
	"github.com/dmitrijs2005/tuktask/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	logger := logging.NewStdoutLogger(slog.LevelInfo)

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		logger.Error(ctx, "config error", "error", err)
		os.Exit(1)
	}

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup error", "error", err)
		os.Exit(1)
	}

	runErr := app.Run(ctx)

	if err := app.Close(context.Background()); err != nil {
		logger.Error(ctx, "shutdown error", "error", err)
	}

	if runErr != nil {
		os.Exit(1)
	}
}
