package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/ferdiebergado/pneumodetect/internal/auth"
	"github.com/ferdiebergado/pneumodetect/internal/config"
	"github.com/ferdiebergado/pneumodetect/internal/middleware"
	"github.com/ferdiebergado/pneumodetect/internal/prediction"
	"github.com/ferdiebergado/pneumodetect/internal/user"
)

// drainer is implemented by queues that finish pending work on shutdown.
type drainer interface {
	Close(ctx context.Context) error
}

type App struct {
	server          *http.Server
	handler         http.Handler
	config          *config.Config
	provider        *Provider
	middlewares     []func(http.Handler) http.Handler
	stop            context.CancelFunc
	shutdownTimeout time.Duration
}

func (a *App) registerMiddlewares() {
	for _, mw := range a.middlewares {
		a.provider.Router.Use(mw)
	}
}

func (a *App) setupRoutes() {
	p := a.provider

	userModule := user.NewModule(p.DB)

	authModule := auth.NewModule(&auth.Provider{
		Cfg:     a.config,
		DB:      p.DB,
		UserSvc: userModule.Service(),
		Hasher:  p.Hasher,
		Signer:  p.Signer,
		Queue:   p.Queue,
	})

	predictionModule := prediction.NewModule(&prediction.Provider{
		Cfg:        a.config,
		DB:         p.DB,
		UserSvc:    userModule.Service(),
		Classifier: p.Classifier,
		Store:      p.Store,
	})

	limiter := middleware.NewRateLimiter(a.config.RateLimit)
	session := authModule.RequireSession()

	mountRootRoutes(p.Router)
	mountAuthRoutes(p.Router, authModule.Handler(), userModule.Handler(), p.Validator, a.config, limiter, session)
	mountPredictionRoutes(p.Router, predictionModule.Handler(), limiter, session)
}

// Handler returns the fully wired HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

func (a *App) Start(ctx context.Context) error {
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening...", "address", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		slog.Info("Server has stopped.")
		serverErr <- nil
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received.")
		return nil
	case err := <-serverErr:
		return err
	}
}

// Shutdown stops accepting requests, waits for in-flight ones and then
// drains the email queue within the shutdown timeout.
func (a *App) Shutdown() error {
	slog.Info("Shutting down server...")
	a.stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown server: %w", err))
	}

	if q, ok := a.provider.Queue.(drainer); ok {
		if err := q.Close(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("drain email queue: %w", err))
		}
	}

	return errors.Join(errs...)
}

func New(cfg *config.Config, provider *Provider, middlewares []func(http.Handler) http.Handler) *App {
	serverCtx, stop := context.WithCancel(context.Background())
	serverCfg := cfg.Server

	a := &App{
		config:          cfg,
		provider:        provider,
		middlewares:     middlewares,
		stop:            stop,
		shutdownTimeout: serverCfg.ShutdownTimeout.Duration,
	}

	a.registerMiddlewares()
	a.setupRoutes()
	a.handler = middleware.CORS(cfg.CORS)(provider.Router)

	a.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", serverCfg.Port),
		Handler: a.handler,
		BaseContext: func(_ net.Listener) context.Context {
			return serverCtx
		},
		ReadTimeout:  serverCfg.ReadTimeout.Duration,
		WriteTimeout: serverCfg.WriteTimeout.Duration,
		IdleTimeout:  serverCfg.IdleTimeout.Duration,
	}

	return a
}
