package jwt

import (
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("jwt: invalid token")

// Claims represents the JWT claims that are processed for authentication.
type Claims struct {
	Subject   string
	ID        string
	ExpiresAt time.Time
}

// Signer defines methods for signing and verifying JWT tokens.
type Signer interface {
	Sign(subject string, audience []string, duration time.Duration) (token string, err error)
	Verify(tokenString string) (*Claims, error)
}
