package inference_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ferdiebergado/pneumodetect/internal/inference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inputLen = inference.InputSize * inference.InputSize * inference.Channels

// biasedModel ignores the image and predicts Pneumonia with probability 0.75.
func biasedModel(t *testing.T) *inference.LinearModel {
	t.Helper()

	m, err := inference.NewLinearModel(inputLen, make([]float32, inputLen*2), []float32{0, float32(math.Log(3))})
	require.NoError(t, err)
	return m
}

func TestLinearModel_Predict(t *testing.T) {
	t.Parallel()

	probs, err := biasedModel(t).Predict(inference.Tensor{Data: make([]float32, inputLen)})
	require.NoError(t, err)
	require.Len(t, probs, 2)

	assert.InDelta(t, 0.25, probs[0], 1e-6)
	assert.InDelta(t, 0.75, probs[1], 1e-6)
}

func TestLinearModel_PredictWrongInput(t *testing.T) {
	t.Parallel()

	_, err := biasedModel(t).Predict(inference.Tensor{Data: make([]float32, 10)})
	assert.Error(t, err)
}

func TestLinearModel_FileRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := biasedModel(t).WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	path := filepath.Join(t.TempDir(), "model.pnmd")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	loaded, err := inference.LoadLinearModel(path)
	require.NoError(t, err)

	probs, err := loaded.Predict(inference.Tensor{Data: make([]float32, inputLen)})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, probs[1], 1e-6)
}

func TestReadLinearModel_Malformed(t *testing.T) {
	t.Parallel()

	header := func(magic string, version, input, classes uint32) []byte {
		var buf bytes.Buffer
		buf.WriteString(magic)
		for _, v := range []uint32{version, input, classes} {
			require.NoError(t, binary.Write(&buf, binary.LittleEndian, v))
		}
		return buf.Bytes()
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"Empty", nil},
		{"Bad magic", header("KERA", 1, inputLen, 2)},
		{"Bad version", header("PNMD", 9, inputLen, 2)},
		{"Wrong input size", header("PNMD", 1, 100, 2)},
		{"Three classes", header("PNMD", 1, inputLen, 3)},
		{"Missing weights", header("PNMD", 1, inputLen, 2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := inference.ReadLinearModel(bytes.NewReader(tc.data))
			assert.ErrorIs(t, err, inference.ErrModelFormat)
		})
	}
}

func TestLoadLinearModel_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := inference.LoadLinearModel(filepath.Join(t.TempDir(), "nope.pnmd"))
	assert.Error(t, err)
}
