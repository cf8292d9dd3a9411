package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ferdiebergado/pneumodetect/internal/config"
	"github.com/ferdiebergado/pneumodetect/internal/inference"
	"github.com/ferdiebergado/pneumodetect/internal/platform/email"
	"github.com/ferdiebergado/pneumodetect/internal/platform/hash"
	"github.com/ferdiebergado/pneumodetect/internal/platform/jwt"
	"github.com/ferdiebergado/pneumodetect/internal/platform/router"
	"github.com/ferdiebergado/pneumodetect/internal/platform/storage"
	"github.com/ferdiebergado/pneumodetect/internal/platform/validation"
)

// Provider holds the shared dependencies built once at startup.
type Provider struct {
	DB         *sql.DB
	Signer     jwt.Signer
	Queue      email.Queue
	Validator  validation.Validator
	Hasher     hash.Hasher
	Router     router.Router
	Store      storage.Store
	Classifier inference.Classifier
}

func newProvider(ctx context.Context, cfg *config.Config, dbConn *sql.DB) (*Provider, error) {
	securityKey := cfg.App.Key

	mailer, err := email.NewSMTPMailer(cfg.SMTP, cfg.Email)
	if err != nil {
		return nil, fmt.Errorf("new smtp mailer: %w", err)
	}

	store, err := storage.NewS3Store(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("new s3 store: %w", err)
	}

	model, err := inference.LoadLinearModel(cfg.Model.Path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	engine, err := inference.NewEngine(model, cfg.Model.CacheSize, cfg.Model.MaxPixels)
	if err != nil {
		return nil, fmt.Errorf("new inference engine: %w", err)
	}

	provider := &Provider{
		DB:         dbConn,
		Signer:     jwt.NewGolangJWTSigner(cfg.JWT, securityKey),
		Queue:      email.NewDispatcher(mailer, cfg.Email),
		Validator:  validation.NewGoPlaygroundValidator(),
		Hasher:     hash.NewArgon2Hasher(cfg.Argon2, securityKey),
		Router:     router.NewGoexpressRouter(),
		Store:      store,
		Classifier: engine,
	}

	return provider, nil
}
