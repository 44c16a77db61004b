package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/poetrydb-api-tests/internal/app"
	"github.com/samvad-hq/poetrydb-api-tests/internal/config"
	"github.com/samvad-hq/poetrydb-api-tests/internal/logger"
)

var errChecksFailed = errors.New("smoke checks failed")

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "smoke run failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("smoke run starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session, err := app.NewSession(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize session", "error", err.Error())
		return err
	}
	defer session.Close()

	sum, err := session.Run(ctx)
	fmt.Fprintf(os.Stdout, "run %s: %d passed, %d failed (log: %s)\n", sum.RunID, sum.Passed, sum.Failed, session.LogPath())
	for _, r := range sum.Results {
		if !r.Passed {
			fmt.Fprintf(os.Stdout, "FAIL %s\n%s\n", r.Name, r.Error)
		}
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("interrupted: %w", ctxErr)
	}
	if !sum.OK() {
		return errChecksFailed
	}
	return err
}
