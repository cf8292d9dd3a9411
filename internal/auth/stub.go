package auth

import (
	"context"
	"errors"
	"time"
)

type StubService struct {
	RegisterFunc           func(ctx context.Context, params RegisterParams) error
	VerifyEmailFunc        func(ctx context.Context, email, token string) error
	ResendVerificationFunc func(ctx context.Context, email string) error
	LoginFunc              func(ctx context.Context, params LoginParams) (string, error)
}

var _ AuthService = (*StubService)(nil)

func (s *StubService) Register(ctx context.Context, params RegisterParams) error {
	if s.RegisterFunc == nil {
		return errors.New("Register() not implemented by stub")
	}
	return s.RegisterFunc(ctx, params)
}

func (s *StubService) VerifyEmail(ctx context.Context, email, token string) error {
	if s.VerifyEmailFunc == nil {
		return errors.New("VerifyEmail() not implemented by stub")
	}
	return s.VerifyEmailFunc(ctx, email, token)
}

func (s *StubService) ResendVerification(ctx context.Context, email string) error {
	if s.ResendVerificationFunc == nil {
		return errors.New("ResendVerification() not implemented by stub")
	}
	return s.ResendVerificationFunc(ctx, email)
}

func (s *StubService) Login(ctx context.Context, params LoginParams) (string, error) {
	if s.LoginFunc == nil {
		return "", errors.New("Login() not implemented by stub")
	}
	return s.LoginFunc(ctx, params)
}

type StubRepo struct {
	MarkVerifiedFunc      func(ctx context.Context, userID int64, token string, now time.Time) (bool, error)
	ClaimAttemptFunc      func(ctx context.Context, userID int64, maxAttempts int, now time.Time) (int, error)
	ResetVerificationFunc func(ctx context.Context, userID int64, token string, expiresAt, now time.Time) error
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) MarkVerified(ctx context.Context, userID int64, token string, now time.Time) (bool, error) {
	if r.MarkVerifiedFunc == nil {
		return false, errors.New("MarkVerified() not implemented by stub")
	}
	return r.MarkVerifiedFunc(ctx, userID, token, now)
}

func (r *StubRepo) ClaimAttempt(ctx context.Context, userID int64, maxAttempts int, now time.Time) (int, error) {
	if r.ClaimAttemptFunc == nil {
		return 0, errors.New("ClaimAttempt() not implemented by stub")
	}
	return r.ClaimAttemptFunc(ctx, userID, maxAttempts, now)
}

func (r *StubRepo) ResetVerification(ctx context.Context, userID int64, token string, expiresAt, now time.Time) error {
	if r.ResetVerificationFunc == nil {
		return errors.New("ResetVerification() not implemented by stub")
	}
	return r.ResetVerificationFunc(ctx, userID, token, expiresAt, now)
}
