package auth

import (
	"net/http"
	"time"

	"github.com/ferdiebergado/pneumodetect/internal/config"
	"github.com/ferdiebergado/pneumodetect/internal/platform/db"
	"github.com/ferdiebergado/pneumodetect/internal/platform/email"
	"github.com/ferdiebergado/pneumodetect/internal/platform/hash"
	"github.com/ferdiebergado/pneumodetect/internal/platform/jwt"
	"github.com/ferdiebergado/pneumodetect/internal/user"
)

type Provider struct {
	Cfg     *config.Config
	DB      db.Executor
	UserSvc user.Service
	Hasher  hash.Hasher
	Signer  jwt.Signer
	Queue   email.Queue
	Clock   func() time.Time
}

type Module struct {
	svc        *Service
	handler    *Handler
	middleware func(http.Handler) http.Handler
}

func (m *Module) Handler() *Handler {
	return m.handler
}

func (m *Module) Service() *Service {
	return m.svc
}

// RequireSession guards routes that need a logged in user.
func (m *Module) RequireSession() func(http.Handler) http.Handler {
	return m.middleware
}

func NewModule(provider *Provider) *Module {
	repo := NewRepository(provider.DB)
	svc := NewService(repo, provider)
	handler := NewHandler(svc, provider.Cfg)
	return &Module{
		svc:        svc,
		handler:    handler,
		middleware: RequireSession(provider.Signer, provider.Cfg.Cookie),
	}
}
