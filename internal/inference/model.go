package inference

import "errors"

const (
	InputSize = 224
	Channels  = 3
)

// Labels holds the class names in model output order.
var Labels = [...]string{"Normal", "Pneumonia"}

var (
	ErrInvalidImage = errors.New("inference: invalid image")
	ErrModelOutput  = errors.New("inference: unexpected model output")
)

// Tensor is a dense float32 tensor in NHWC layout.
type Tensor struct {
	Shape [4]int
	Data  []float32
}

// Model maps a preprocessed image batch to class probabilities.
type Model interface {
	Predict(input Tensor) ([]float32, error)
}
