package storage

import (
	"context"
	"errors"
)

type StubStore struct {
	UploadFunc func(ctx context.Context, folder string, data []byte) (string, error)
}

var _ Store = (*StubStore)(nil)

func (s *StubStore) Upload(ctx context.Context, folder string, data []byte) (string, error) {
	if s.UploadFunc == nil {
		return "", errors.New("Upload not implemented by stub")
	}
	return s.UploadFunc(ctx, folder, data)
}
