package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/ferdiebergado/pneumodetect/internal/config"
	timex "github.com/ferdiebergado/pneumodetect/internal/pkg/time"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

type fakePutter struct {
	input    *s3.PutObjectInput
	body     []byte
	deadline bool
	err      error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	_, f.deadline = ctx.Deadline()

	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = body

	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_Upload(t *testing.T) {
	t.Parallel()

	putter := &fakePutter{}
	store := newS3Store(putter, config.Storage{
		Bucket:  "xrays",
		Region:  "ap-south-1",
		Timeout: timex.Duration{Duration: time.Second},
	})

	url, err := store.Upload(t.Context(), "PneumoDetect", pngHeader)
	require.NoError(t, err)

	key := aws.ToString(putter.input.Key)
	assert.True(t, strings.HasPrefix(key, "PneumoDetect/"), "key %q", key)
	assert.True(t, strings.HasSuffix(key, ".png"), "key %q", key)
	assert.Equal(t, "xrays", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "image/png", aws.ToString(putter.input.ContentType))
	assert.Equal(t, pngHeader, putter.body)
	assert.True(t, putter.deadline, "upload must carry a deadline")
	assert.Equal(t, "https://xrays.s3.ap-south-1.amazonaws.com/"+key, url)
}

func TestS3Store_UploadFailure(t *testing.T) {
	t.Parallel()

	putter := &fakePutter{err: errors.New("connection reset")}
	store := newS3Store(putter, config.Storage{Bucket: "xrays", Region: "us-east-1"})

	url, err := store.Upload(t.Context(), "PneumoDetect", pngHeader)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, url)
}

func TestPublicBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config.Storage
		want string
	}{
		{"Explicit public URL", config.Storage{PublicURL: "https://cdn.example.com/", Bucket: "b"}, "https://cdn.example.com"},
		{"Path style endpoint", config.Storage{Endpoint: "http://localhost:9000", UsePathStyle: true, Bucket: "b"}, "http://localhost:9000/b"},
		{"AWS virtual host", config.Storage{Bucket: "b", Region: "eu-west-1"}, "https://b.s3.eu-west-1.amazonaws.com"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, publicBaseURL(tc.cfg))
		})
	}
}
