package inference

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"math"

	lru "github.com/hashicorp/golang-lru"
)

// Result is the outcome of a classification.
type Result struct {
	Label      string
	Confidence float64
}

// Classifier labels images.
type Classifier interface {
	Classify(ctx context.Context, image []byte) (Result, error)
}

// Engine runs the preprocessing pipeline and the model. It is safe for concurrent use.
type Engine struct {
	model     Model
	cache     *lru.Cache
	maxPixels int
}

var _ Classifier = (*Engine)(nil)

// NewEngine creates an engine around model; cacheSize 0 disables result caching.
// Uploads larger than maxPixels are rejected, see Preprocess.
func NewEngine(model Model, cacheSize, maxPixels int) (*Engine, error) {
	e := &Engine{model: model, maxPixels: maxPixels}

	if cacheSize > 0 {
		cache, err := lru.New(cacheSize)
		if err != nil {
			return nil, fmt.Errorf("new lru cache with size %d: %w", cacheSize, err)
		}
		e.cache = cache
	}

	return e, nil
}

func (e *Engine) Classify(ctx context.Context, image []byte) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	key := sha256.Sum256(image)
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			slog.Debug("inference cache hit")
			return cached.(Result), nil //nolint:forcetypeassert //only Results are stored.
		}
	}

	input, err := Preprocess(image, e.maxPixels)
	if err != nil {
		return Result{}, err
	}

	probs, err := e.model.Predict(input)
	if err != nil {
		return Result{}, fmt.Errorf("predict: %w", err)
	}

	res, err := interpret(probs)
	if err != nil {
		return Result{}, err
	}

	if e.cache != nil {
		e.cache.Add(key, res)
	}

	return res, nil
}

// interpret picks the most probable class and rounds its probability to a percentage with two decimals.
func interpret(probs []float32) (Result, error) {
	if len(probs) != len(Labels) {
		return Result{}, fmt.Errorf("%w: %d classes", ErrModelOutput, len(probs))
	}

	best := 0
	for i, p := range probs {
		if math.IsNaN(float64(p)) {
			return Result{}, fmt.Errorf("%w: NaN probability", ErrModelOutput)
		}
		if p > probs[best] {
			best = i
		}
	}

	return Result{
		Label:      Labels[best],
		Confidence: math.Round(float64(probs[best])*10000) / 100,
	}, nil
}
