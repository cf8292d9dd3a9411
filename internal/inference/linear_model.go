package inference

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

const (
	modelMagic   = "PNMD"
	modelVersion = 1
)

var ErrModelFormat = errors.New("inference: malformed model file")

type modelHeader struct {
	Magic     [4]byte
	Version   uint32
	InputLen  uint32
	NumLabels uint32
}

// LinearModel is a softmax classification head over the flattened input.
type LinearModel struct {
	inputLen int
	weights  []float32 // NumLabels rows of inputLen
	bias     []float32
}

var _ Model = (*LinearModel)(nil)

func NewLinearModel(inputLen int, weights, bias []float32) (*LinearModel, error) {
	if inputLen <= 0 || len(bias) == 0 || len(weights) != inputLen*len(bias) {
		return nil, fmt.Errorf("%w: %d weights for %d inputs and %d classes", ErrModelFormat, len(weights), inputLen, len(bias))
	}

	return &LinearModel{inputLen: inputLen, weights: weights, bias: bias}, nil
}

// LoadLinearModel reads a model file from path.
func LoadLinearModel(path string) (*LinearModel, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open model %s: %w", path, err)
	}
	defer f.Close()

	m, err := ReadLinearModel(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}

	return m, nil
}

// ReadLinearModel decodes the little-endian PNMD format: header, weights, bias.
func ReadLinearModel(r io.Reader) (*LinearModel, error) {
	var hdr modelHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrModelFormat, err)
	}

	if string(hdr.Magic[:]) != modelMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrModelFormat, hdr.Magic[:])
	}

	if hdr.Version != modelVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrModelFormat, hdr.Version)
	}

	if hdr.InputLen != InputSize*InputSize*Channels {
		return nil, fmt.Errorf("%w: input length %d", ErrModelFormat, hdr.InputLen)
	}

	if hdr.NumLabels != uint32(len(Labels)) {
		return nil, fmt.Errorf("%w: %d classes", ErrModelFormat, hdr.NumLabels)
	}

	weights := make([]float32, int(hdr.InputLen)*int(hdr.NumLabels))
	if err := binary.Read(r, binary.LittleEndian, weights); err != nil {
		return nil, fmt.Errorf("%w: weights: %w", ErrModelFormat, err)
	}

	bias := make([]float32, hdr.NumLabels)
	if err := binary.Read(r, binary.LittleEndian, bias); err != nil {
		return nil, fmt.Errorf("%w: bias: %w", ErrModelFormat, err)
	}

	return NewLinearModel(int(hdr.InputLen), weights, bias)
}

// WriteTo encodes m in the format read by ReadLinearModel.
func (m *LinearModel) WriteTo(w io.Writer) (int64, error) {
	hdr := modelHeader{
		Version:   modelVersion,
		InputLen:  uint32(m.inputLen),
		NumLabels: uint32(len(m.bias)),
	}
	copy(hdr.Magic[:], modelMagic)

	cw := &countingWriter{w: w}
	for _, v := range []any{hdr, m.weights, m.bias} {
		if err := binary.Write(cw, binary.LittleEndian, v); err != nil {
			return cw.n, fmt.Errorf("write model: %w", err)
		}
	}

	return cw.n, nil
}

// Predict returns softmax probabilities for a batch of one.
func (m *LinearModel) Predict(input Tensor) ([]float32, error) {
	if len(input.Data) != m.inputLen {
		return nil, fmt.Errorf("input has %d values, model expects %d", len(input.Data), m.inputLen)
	}

	logits := make([]float64, len(m.bias))
	for c := range logits {
		row := m.weights[c*m.inputLen : (c+1)*m.inputLen]
		sum := float64(m.bias[c])
		for i, x := range input.Data {
			sum += float64(row[i]) * float64(x)
		}
		logits[c] = sum
	}

	return softmax(logits), nil
}

func softmax(logits []float64) []float32 {
	maxLogit := math.Inf(-1)
	for _, l := range logits {
		maxLogit = math.Max(maxLogit, l)
	}

	var total float64
	exps := make([]float64, len(logits))
	for i, l := range logits {
		exps[i] = math.Exp(l - maxLogit)
		total += exps[i]
	}

	probs := make([]float32, len(logits))
	for i, e := range exps {
		probs[i] = float32(e / total)
	}
	return probs
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
