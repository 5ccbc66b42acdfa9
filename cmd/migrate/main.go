// Command migrate rewrites string-typed userId fields on task documents to
// ObjectIDs. It is configured through the environment (see migrator.Config)
// and exits non-zero only on configuration, connection or cursor failure.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/tuktask/internal/logging"
	"github.com/dmitrijs2005/tuktask/internal/migrator"
	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := logging.NewStdoutLogger(slog.LevelInfo)

	// .env is optional
	_ = godotenv.Load()

	cfg, err := migrator.LoadConfig()
	if err != nil {
		logger.Error(ctx, "config error", "error", err)
		return migrator.ExitError
	}

	archiver, err := migrator.NewArchiver(ctx, cfg.Report)
	if err != nil {
		logger.Warn(ctx, "report archive disabled", "error", err)
	}

	return migrator.NewJob(cfg, logger, archiver).Run(ctx)
}
