package hash

import "errors"

var ErrUnknownScheme = errors.New("hash: unknown hash scheme")

// Hasher hashes passwords and verifies them against stored hashes.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) (bool, error)
}
