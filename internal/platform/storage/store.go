package storage

import (
	"context"
	"errors"
)

var ErrUnavailable = errors.New("storage: object store unavailable")

// Store saves binary artifacts and returns a public HTTPS URL for them.
type Store interface {
	Upload(ctx context.Context, folder string, data []byte) (url string, err error)
}
