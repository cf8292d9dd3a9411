package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/ferdiebergado/goexpress"
	"github.com/ferdiebergado/gopherkit/env"

	"github.com/ferdiebergado/pneumodetect/internal/config"
	"github.com/ferdiebergado/pneumodetect/internal/middleware"
	"github.com/ferdiebergado/pneumodetect/internal/pkg/logging"
	"github.com/ferdiebergado/pneumodetect/internal/pkg/message"
	"github.com/ferdiebergado/pneumodetect/internal/platform/db"
)

const (
	envFile = ".env"
	cfgFile = "config.json"
)

// Run loads the configuration, wires the application and serves until ctx is done.
func Run(ctx context.Context) error {
	slog.Info("Initializing...")

	if os.Getenv("APP_ENV") != "production" {
		if err := env.Load(envFile); err != nil {
			slog.Warn("env file not loaded", "file", envFile, "reason", err)
		}
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.SetupLogger(cfg.App.Env, cfg.App.LogLevel, os.Stdout)

	if cfg.App.Key == "" {
		return fmt.Errorf(message.EnvErrFmt, "KEY")
	}

	dbConn, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer dbConn.Close()

	if err := db.Migrate(ctx, dbConn, cfg.DB.Driver); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	provider, err := newProvider(ctx, cfg, dbConn)
	if err != nil {
		return err
	}

	api := New(cfg, provider, globalMiddlewares(cfg))
	if err := api.Start(ctx); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	return api.Shutdown()
}

func globalMiddlewares(cfg *config.Config) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.InjectWriter,
		goexpress.RecoverFromPanic,
		middleware.LogRequest,
		middleware.ContextGuard,
		middleware.Timeout(cfg.Server.RequestTimeout.Duration),
	}
}
