package prediction

import (
	"time"

	"github.com/ferdiebergado/pneumodetect/internal/config"
	"github.com/ferdiebergado/pneumodetect/internal/inference"
	"github.com/ferdiebergado/pneumodetect/internal/platform/db"
	"github.com/ferdiebergado/pneumodetect/internal/platform/storage"
	"github.com/ferdiebergado/pneumodetect/internal/user"
)

type Provider struct {
	Cfg        *config.Config
	DB         db.Executor
	UserSvc    user.Service
	Classifier inference.Classifier
	Store      storage.Store
	Clock      func() time.Time
}

type Module struct {
	svc     Service
	handler *Handler
}

func (m *Module) Handler() *Handler {
	return m.handler
}

func (m *Module) Service() Service {
	return m.svc
}

func NewModule(provider *Provider) *Module {
	repo := NewRepository(provider.DB)
	svc := NewService(repo, provider)
	handler := NewHandler(svc, provider.Cfg.Server.MaxUploadBytes)
	return &Module{
		svc:     svc,
		handler: handler,
	}
}
