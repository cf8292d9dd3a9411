package prediction

import (
	"context"
	"errors"
)

type StubService struct {
	PredictFunc func(ctx context.Context, email string, image []byte) (*Outcome, error)
	GuestFunc   func(ctx context.Context, image []byte) (*GuestOutcome, error)
	HistoryFunc func(ctx context.Context, email string) ([]View, error)
}

var _ Service = (*StubService)(nil)

func (s *StubService) Predict(ctx context.Context, email string, image []byte) (*Outcome, error) {
	if s.PredictFunc == nil {
		return nil, errors.New("Predict() not implemented by stub")
	}
	return s.PredictFunc(ctx, email, image)
}

func (s *StubService) Guest(ctx context.Context, image []byte) (*GuestOutcome, error) {
	if s.GuestFunc == nil {
		return nil, errors.New("Guest() not implemented by stub")
	}
	return s.GuestFunc(ctx, image)
}

func (s *StubService) History(ctx context.Context, email string) ([]View, error) {
	if s.HistoryFunc == nil {
		return nil, errors.New("History() not implemented by stub")
	}
	return s.HistoryFunc(ctx, email)
}

type StubRepo struct {
	RecordFunc      func(ctx context.Context, p *Prediction) error
	ListByEmailFunc func(ctx context.Context, email string, limit int) ([]Prediction, error)
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) Record(ctx context.Context, p *Prediction) error {
	if r.RecordFunc == nil {
		return errors.New("Record() not implemented by stub")
	}
	return r.RecordFunc(ctx, p)
}

func (r *StubRepo) ListByEmail(ctx context.Context, email string, limit int) ([]Prediction, error) {
	if r.ListByEmailFunc == nil {
		return nil, errors.New("ListByEmail() not implemented by stub")
	}
	return r.ListByEmailFunc(ctx, email, limit)
}
