package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/soocke/airpaint-go/app"
	"github.com/soocke/airpaint-go/config"
	"github.com/soocke/airpaint-go/debug"
	"github.com/soocke/airpaint-go/domain/capture"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	boot := NewLogger(slog.LevelInfo)
	if err := config.LoadDotEnv(); err != nil {
		boot.Warn("dotenv load failed", "error", err)
	}
	cfgPath := config.DefaultPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		boot.Warn("config load failed, using defaults", "path", cfgPath, "error", err)
	}
	cfg.ApplyEnv()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level).With("session", uuid.NewString())
	if cfg.Debug {
		debug.StartMemLogger(ctx, 10*time.Second, logger)
		debug.StartGoroutineLogger(ctx, 10*time.Second, logger)
	}
	logger.Info("starting", "source", cfg.Source, "display", cfg.Display,
		"search_policy", cfg.SearchPolicy, "hsv_backend", cfg.HSVBackend, "config", cfgPath)

	c, err := app.BuildContainer(cfg, logger, cfgPath)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	if err := app.Run(ctx, c); err != nil {
		logger.Error("session failed", "error", err)
		if errors.Is(err, capture.ErrSourceUnavailable) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}
