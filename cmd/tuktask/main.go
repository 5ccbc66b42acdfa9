package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/tuktask/internal/client/cli"
	"github.com/dmitrijs2005/tuktask/internal/client/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	args := os.Args[1:]

	cfg, err := config.LoadConfig(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		return cli.ExitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "startup error:", err)
		return cli.ExitError
	}

	return app.Exec(ctx, args)
}
