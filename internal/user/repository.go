package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferdiebergado/pneumodetect/internal/platform/db"
)

var (
	ErrNotFound       = errors.New("user: user not found")
	ErrDuplicateEmail = errors.New("user: email already registered")
)

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(db db.Executor) *SQLRepository {
	return &SQLRepository{db: db}
}

const queryCreate = `
INSERT INTO users (username, email, password_hash, verification_token, verification_expires_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
RETURNING id`

// Create inserts an unverified user. The database assigns the id.
func (r *SQLRepository) Create(ctx context.Context, params CreateParams) (*User, error) {
	now := params.Now.UTC()
	expires := params.VerificationExpiresAt.UTC()

	var id int64
	err := r.db.QueryRowContext(ctx, queryCreate,
		params.Username, params.Email, params.PasswordHash,
		params.VerificationToken, expires, now).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("create user with email %s: %w", params.Email, ErrDuplicateEmail)
		}
		return nil, fmt.Errorf("%w: create user with email %s: %w", db.ErrUnavailable, params.Email, err)
	}

	token := params.VerificationToken
	return &User{
		ID:                    id,
		Username:              params.Username,
		Email:                 params.Email,
		PasswordHash:          params.PasswordHash,
		VerificationToken:     &token,
		VerificationExpiresAt: &expires,
		CreatedAt:             now,
		UpdatedAt:             now,
	}, nil
}

const queryFindByEmail = `
SELECT id, username, email, password_hash, is_verified, verification_token,
       verification_expires_at, verification_attempts, created_at, updated_at
FROM users
WHERE email = $1`

func (r *SQLRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var (
		u       User
		token   sql.NullString
		expires sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, queryFindByEmail, email).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsVerified, &token,
		&expires, &u.VerificationAttempts, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: find user with email %s: %w", db.ErrUnavailable, email, err)
	}

	if token.Valid {
		u.VerificationToken = &token.String
	}

	if expires.Valid {
		t := expires.Time.UTC()
		u.VerificationExpiresAt = &t
	}

	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()

	return &u, nil
}
