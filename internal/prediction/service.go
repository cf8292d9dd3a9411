package prediction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ferdiebergado/pneumodetect/internal/config"
	"github.com/ferdiebergado/pneumodetect/internal/inference"
	"github.com/ferdiebergado/pneumodetect/internal/platform/storage"
	"github.com/ferdiebergado/pneumodetect/internal/user"
)

var ErrUserNotFound = errors.New("prediction: user not found")

type Repository interface {
	Record(ctx context.Context, p *Prediction) error
	ListByEmail(ctx context.Context, email string, limit int) ([]Prediction, error)
}

type Service interface {
	Predict(ctx context.Context, email string, image []byte) (*Outcome, error)
	Guest(ctx context.Context, image []byte) (*GuestOutcome, error)
	History(ctx context.Context, email string) ([]View, error)
}

type service struct {
	repo       Repository
	userSvc    user.Service
	classifier inference.Classifier
	store      storage.Store
	cfg        *config.Config
	now        func() time.Time
}

var _ Service = (*service)(nil)

// Predict classifies the image of a signed in user, uploads it and records the result.
// Nothing is recorded when the upload fails.
func (s *service) Predict(ctx context.Context, email string, image []byte) (*Outcome, error) {
	u, err := s.userSvc.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	result, err := s.classifier.Classify(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("classify image: %w", err)
	}

	url, err := s.store.Upload(ctx, s.cfg.Storage.Folder, image)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	p := &Prediction{
		ID:         uuid.New(),
		UserID:     u.ID,
		Label:      result.Label,
		Confidence: result.Confidence,
		ImageURL:   url,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.repo.Record(ctx, p); err != nil {
		return nil, fmt.Errorf("record prediction: %w", err)
	}

	slog.Info("prediction recorded", "id", p.ID, "user_id", u.ID, "label", p.Label)

	return &Outcome{
		Disease:    p.Label,
		Confidence: p.Confidence,
		ImageURL:   p.ImageURL,
		Timestamp:  p.CreatedAt,
	}, nil
}

func (s *service) Guest(ctx context.Context, image []byte) (*GuestOutcome, error) {
	result, err := s.classifier.Classify(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("classify image: %w", err)
	}

	return &GuestOutcome{
		Disease:    result.Label,
		Confidence: result.Confidence,
	}, nil
}

func (s *service) History(ctx context.Context, email string) ([]View, error) {
	predictions, err := s.repo.ListByEmail(ctx, email, s.cfg.History.Limit)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}

	offset := s.cfg.History.DisplayOffset.Duration
	views := make([]View, 0, len(predictions))
	for _, p := range predictions {
		views = append(views, NewView(p, offset))
	}

	return views, nil
}

func NewService(repo Repository, provider *Provider) Service {
	now := provider.Clock
	if now == nil {
		now = time.Now
	}

	return &service{
		repo:       repo,
		userSvc:    provider.UserSvc,
		classifier: provider.Classifier,
		store:      provider.Store,
		cfg:        provider.Cfg,
		now:        now,
	}
}
