package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/ferdiebergado/pneumodetect/internal/config"
	"github.com/ferdiebergado/pneumodetect/internal/pkg/security"
	"github.com/ferdiebergado/pneumodetect/internal/platform/email"
	"github.com/ferdiebergado/pneumodetect/internal/platform/hash"
	"github.com/ferdiebergado/pneumodetect/internal/platform/jwt"
	"github.com/ferdiebergado/pneumodetect/internal/user"
)

var (
	ErrPasswordMismatch    = errors.New("auth: passwords do not match")
	ErrAlreadyVerified     = errors.New("auth: email already verified")
	ErrPendingVerification = errors.New("auth: email pending verification")
	ErrInvalidToken        = errors.New("auth: invalid verification token")
	ErrTokenExpired        = errors.New("auth: verification token expired")
	ErrVerificationLocked  = errors.New("auth: too many verification attempts")
	ErrInvalidCredentials  = errors.New("auth: invalid credentials")
	ErrNotVerified         = errors.New("auth: email not verified")
)

// Repository holds the verification state transitions of a user.
type Repository interface {
	MarkVerified(ctx context.Context, userID int64, token string, now time.Time) (bool, error)
	ClaimAttempt(ctx context.Context, userID int64, maxAttempts int, now time.Time) (int, error)
	ResetVerification(ctx context.Context, userID int64, token string, expiresAt, now time.Time) error
}

type Service struct {
	repo    Repository
	userSvc user.Service
	hasher  hash.Hasher
	signer  jwt.Signer
	queue   email.Queue
	cfg     *config.Config
	now     func() time.Time
}

var _ AuthService = (*Service)(nil)

type RegisterParams struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

func (p RegisterParams) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", p.Username),
		slog.String("email", maskChar),
		slog.String("password", maskChar),
		slog.String("confirm_password", maskChar),
	)
}

// Register creates an unverified user and queues the verification email.
func (s *Service) Register(ctx context.Context, params RegisterParams) error {
	if params.Password != params.ConfirmPassword {
		return ErrPasswordMismatch
	}

	existing, err := s.userSvc.FindByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		return fmt.Errorf(MsgFmtFindUserByEmail, err)
	}

	if existing != nil {
		if existing.IsVerified {
			return ErrAlreadyVerified
		}
		return ErrPendingVerification
	}

	passwordHash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	token, err := security.GenerateNumericCode()
	if err != nil {
		return fmt.Errorf("generate verification token: %w", err)
	}

	now := s.now()
	u, err := s.userSvc.Create(ctx, user.CreateParams{
		Username:              params.Username,
		Email:                 params.Email,
		PasswordHash:          passwordHash,
		VerificationToken:     token,
		VerificationExpiresAt: now.Add(s.cfg.Verification.TokenTTL.Duration),
		Now:                   now,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return ErrPendingVerification
		}
		return fmt.Errorf("create user: %w", err)
	}

	s.sendVerification(u.Username, u.Email, token)
	return nil
}

// VerifyEmail marks the user verified when token matches the pending one.
// Every try spends one attempt before the token is compared.
func (s *Service) VerifyEmail(ctx context.Context, emailAddr, token string) error {
	u, err := s.userSvc.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf(MsgFmtFindUserByEmail, err)
	}

	if u.IsVerified || u.VerificationToken == nil {
		return ErrInvalidToken
	}

	maxAttempts := s.cfg.Verification.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = math.MaxInt32
	}

	now := s.now()
	attempts, err := s.repo.ClaimAttempt(ctx, u.ID, maxAttempts, now)
	if err != nil {
		if errors.Is(err, ErrVerificationLocked) {
			return ErrVerificationLocked
		}
		return fmt.Errorf("claim verification attempt: %w", err)
	}

	if !security.ConstantTimeEqual(*u.VerificationToken, token) {
		slog.Warn("verification token mismatch", "user_id", u.ID, "attempts", attempts)
		return ErrInvalidToken
	}

	if u.VerificationExpiresAt != nil && now.After(*u.VerificationExpiresAt) {
		return ErrTokenExpired
	}

	ok, err := s.repo.MarkVerified(ctx, u.ID, token, now)
	if err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}

	if !ok {
		return ErrInvalidToken
	}

	return nil
}

// ResendVerification issues a fresh token. Unknown emails succeed silently.
func (s *Service) ResendVerification(ctx context.Context, emailAddr string) error {
	u, err := s.userSvc.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			slog.Info("verification resend requested for unknown email")
			return nil
		}
		return fmt.Errorf(MsgFmtFindUserByEmail, err)
	}

	if u.IsVerified {
		return ErrAlreadyVerified
	}

	token, err := security.GenerateNumericCode()
	if err != nil {
		return fmt.Errorf("generate verification token: %w", err)
	}

	now := s.now()
	expiresAt := now.Add(s.cfg.Verification.TokenTTL.Duration)
	if err := s.repo.ResetVerification(ctx, u.ID, token, expiresAt, now); err != nil {
		return fmt.Errorf("reset verification: %w", err)
	}

	s.sendVerification(u.Username, u.Email, token)
	return nil
}

type LoginParams struct {
	Email    string
	Password string
}

func (p LoginParams) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", maskChar),
		slog.String("password", maskChar),
	)
}

// Login returns a signed session token for a verified user.
// Unverified users are refused before the password is checked.
func (s *Service) Login(ctx context.Context, params LoginParams) (string, error) {
	u, err := s.userSvc.FindByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf(MsgFmtFindUserByEmail, err)
	}

	if !u.IsVerified {
		return "", ErrNotVerified
	}

	ok, err := s.hasher.Verify(params.Password, u.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password for user %d: %w", u.ID, err)
	}

	if !ok {
		return "", ErrInvalidCredentials
	}

	issuer := s.cfg.JWT.Issuer
	token, err := s.signer.Sign(u.Email, []string{issuer}, s.cfg.JWT.TTL.Duration)
	if err != nil {
		return "", fmt.Errorf("sign session token for user %d: %w", u.ID, err)
	}

	return token, nil
}

func (s *Service) sendVerification(username, to, token string) {
	query := url.Values{}
	query.Set("email", to)
	query.Set("token", token)
	link := strings.TrimSuffix(s.cfg.App.FrontendURL, "/") + "/verify-email?" + query.Encode()

	msg := email.Message{
		To:       []string{to},
		Subject:  verificationSubject,
		Template: verificationTemplate,
		Data: map[string]string{
			"Username":  username,
			"Code":      token,
			"Link":      link,
			"ExpiresIn": s.cfg.Verification.TokenTTL.Duration.String(),
		},
	}

	if !s.queue.Enqueue(msg) {
		slog.Error("verification email was not queued")
	}
}

func NewService(repo Repository, provider *Provider) *Service {
	now := provider.Clock
	if now == nil {
		now = time.Now
	}

	return &Service{
		repo:    repo,
		userSvc: provider.UserSvc,
		hasher:  provider.Hasher,
		signer:  provider.Signer,
		queue:   provider.Queue,
		cfg:     provider.Cfg,
		now:     now,
	}
}
