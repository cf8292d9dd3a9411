package inference

import (
	"context"
	"errors"
)

type StubModel struct {
	PredictFunc func(input Tensor) ([]float32, error)
}

var _ Model = (*StubModel)(nil)

func (m *StubModel) Predict(input Tensor) ([]float32, error) {
	if m.PredictFunc == nil {
		return nil, errors.New("Predict not implemented by stub")
	}
	return m.PredictFunc(input)
}

type StubClassifier struct {
	ClassifyFunc func(ctx context.Context, image []byte) (Result, error)
}

var _ Classifier = (*StubClassifier)(nil)

func (c *StubClassifier) Classify(ctx context.Context, image []byte) (Result, error) {
	if c.ClassifyFunc == nil {
		return Result{}, errors.New("Classify not implemented by stub")
	}
	return c.ClassifyFunc(ctx, image)
}
