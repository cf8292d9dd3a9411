package user

import (
	"log/slog"
	"time"
)

type User struct {
	ID                    int64
	Username              string
	Email                 string
	PasswordHash          string
	IsVerified            bool
	VerificationToken     *string
	VerificationExpiresAt *time.Time
	VerificationAttempts  int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type CreateParams struct {
	Username              string
	Email                 string
	PasswordHash          string
	VerificationToken     string
	VerificationExpiresAt time.Time
	Now                   time.Time
}

func (p CreateParams) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", p.Username),
		slog.String("email", "*"),
		slog.String("password_hash", "*"),
		slog.String("verification_token", "*"),
	)
}
