package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/laliga-stats/internal/app"
	"github.com/riskibarqy/laliga-stats/internal/config"
	"github.com/riskibarqy/laliga-stats/internal/observability"
	"github.com/riskibarqy/laliga-stats/internal/platform/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		printUsage()
		return 2
	}
	stage := strings.ToLower(strings.TrimSpace(os.Args[1]))

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}).
		With("service", cfg.ServiceName, "version", cfg.ServiceVersion, "stage", stage)
	logging.SetDefault(logger)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("shutdown uptrace", "error", err)
		}
	}()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return 1
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("close app", "error", err)
		}
	}()

	started := time.Now()
	report, err := a.RunStage(ctx, stage)
	if err != nil {
		logger.ErrorContext(ctx, "stage failed", "error", err, "duration", time.Since(started))
		return 1
	}

	body, err := sonic.ConfigStd.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.Error("encode report", "error", err)
		return 1
	}
	fmt.Println(string(body))
	logger.InfoContext(ctx, "stage finished", "duration", time.Since(started))
	return 0
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <%s>\n", name, strings.Join(app.Stages, "|"))
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s extract\n", name)
	fmt.Fprintf(os.Stderr, "  DB_ENABLED=true DB_URL=postgres://... %s run\n", name)
}
