package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ferdiebergado/pneumodetect/internal/platform/db"
)

type SQLRepository struct {
	db db.Executor
}

func NewRepository(db db.Executor) *SQLRepository {
	return &SQLRepository{db: db}
}

var _ Repository = (*SQLRepository)(nil)

const queryMarkVerified = `
UPDATE users
SET is_verified = TRUE, verification_token = NULL, verification_expires_at = NULL,
    verification_attempts = 0, updated_at = $1
WHERE id = $2 AND verification_token = $3 AND is_verified = FALSE`

// MarkVerified verifies the user only if token is still the pending one.
// It reports false when no row matched, so a token can be used once.
func (r *SQLRepository) MarkVerified(ctx context.Context, userID int64, token string, now time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, queryMarkVerified, now.UTC(), userID, token)
	if err != nil {
		return false, fmt.Errorf("%w: mark user %d verified: %w", db.ErrUnavailable, userID, err)
	}

	numRows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}

	return numRows == 1, nil
}

const queryClaimAttempt = `
UPDATE users
SET verification_attempts = verification_attempts + 1, updated_at = $1
WHERE id = $2 AND verification_attempts < $3
RETURNING verification_attempts`

// ClaimAttempt spends one verification attempt of the user. It fails with
// ErrVerificationLocked once maxAttempts have been spent, so concurrent
// guesses can never exceed the limit.
func (r *SQLRepository) ClaimAttempt(ctx context.Context, userID int64, maxAttempts int, now time.Time) (int, error) {
	var attempts int
	err := r.db.QueryRowContext(ctx, queryClaimAttempt, now.UTC(), userID, maxAttempts).Scan(&attempts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrVerificationLocked
		}
		return 0, fmt.Errorf("%w: claim attempt of user %d: %w", db.ErrUnavailable, userID, err)
	}
	return attempts, nil
}

const queryResetVerification = `
UPDATE users
SET verification_token = $1, verification_expires_at = $2, verification_attempts = 0, updated_at = $3
WHERE id = $4 AND is_verified = FALSE`

func (r *SQLRepository) ResetVerification(ctx context.Context, userID int64, token string, expiresAt, now time.Time) error {
	res, err := r.db.ExecContext(ctx, queryResetVerification, token, expiresAt.UTC(), now.UTC(), userID)
	if err != nil {
		return fmt.Errorf("%w: reset verification of user %d: %w", db.ErrUnavailable, userID, err)
	}

	numRows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if numRows == 0 {
		return ErrAlreadyVerified
	}

	return nil
}
