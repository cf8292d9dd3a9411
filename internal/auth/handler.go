package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ferdiebergado/pneumodetect/internal/config"
	"github.com/ferdiebergado/pneumodetect/internal/pkg/errx"
	"github.com/ferdiebergado/pneumodetect/internal/pkg/message"
	"github.com/ferdiebergado/pneumodetect/internal/pkg/web"
	"github.com/ferdiebergado/pneumodetect/internal/platform/db"
)

// AuthService is the account lifecycle used by the HTTP layer.
type AuthService interface {
	Register(ctx context.Context, params RegisterParams) error
	VerifyEmail(ctx context.Context, email, token string) error
	ResendVerification(ctx context.Context, email string) error
	Login(ctx context.Context, params LoginParams) (string, error)
}

type Handler struct {
	svc AuthService
	cfg *config.Config
}

func NewHandler(svc AuthService, cfg *config.Config) *Handler {
	return &Handler{svc: svc, cfg: cfg}
}

type RegisterRequest struct {
	Username        string `json:"username,omitempty" validate:"required,max=50"`
	Email           string `json:"email,omitempty" validate:"required,email,max=100"`
	Password        string `json:"password,omitempty" validate:"required,max=128"`
	ConfirmPassword string `json:"confirm_password,omitempty" validate:"required"`
}

func (r RegisterRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", r.Username),
		slog.String("email", maskChar),
		slog.String("password", maskChar),
		slog.String("confirm_password", maskChar),
	)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[RegisterRequest](r.Context())
	if err != nil {
		web.Fail(w, http.StatusBadRequest, err, message.InvalidInput, nil)
		return
	}

	params := RegisterParams(req)
	if err := h.svc.Register(r.Context(), params); err != nil {
		h.fail(w, err)
		return
	}

	web.Msg(w, http.StatusOK, MsgRegistered)
}

// VerifyEmail reads email and token from the query string so the emailed link works as is.
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	emailAddr, token := query.Get("email"), query.Get("token")
	if emailAddr == "" || token == "" {
		web.Fail(w, http.StatusBadRequest, errors.New("missing email or token"), MsgInvalidToken, nil)
		return
	}

	if err := h.svc.VerifyEmail(r.Context(), emailAddr, token); err != nil {
		h.fail(w, err)
		return
	}

	web.Msg(w, http.StatusOK, MsgVerified)
}

type ResendRequest struct {
	Email string `json:"email,omitempty" validate:"required,email"`
}

func (r ResendRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.String("email", maskChar))
}

func (h *Handler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[ResendRequest](r.Context())
	if err != nil {
		web.Fail(w, http.StatusBadRequest, err, message.InvalidInput, nil)
		return
	}

	if err := h.svc.ResendVerification(r.Context(), req.Email); err != nil {
		h.fail(w, err)
		return
	}

	web.Msg(w, http.StatusOK, MsgVerificationResent)
}

type LoginRequest struct {
	Email    string `json:"email,omitempty" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"required"`
}

func (r LoginRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", maskChar),
		slog.String("password", maskChar),
	)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[LoginRequest](r.Context())
	if err != nil {
		web.Fail(w, http.StatusBadRequest, err, message.InvalidInput, nil)
		return
	}

	token, err := h.svc.Login(r.Context(), LoginParams(req))
	if err != nil {
		h.fail(w, err)
		return
	}

	http.SetCookie(w, newSessionCookie(h.cfg.Cookie, token, h.cfg.JWT.TTL.Duration))
	web.Msg(w, http.StatusOK, MsgLoggedIn)
}

func (h *Handler) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, clearSessionCookie(h.cfg.Cookie))
	web.Msg(w, http.StatusOK, MsgLoggedOut)
}

var errorResponses = []struct {
	err    error
	status int
	detail string
}{
	{ErrPasswordMismatch, http.StatusBadRequest, MsgPasswordMismatch},
	{ErrAlreadyVerified, http.StatusBadRequest, MsgAlreadyVerified},
	{ErrPendingVerification, http.StatusBadRequest, MsgPendingVerification},
	{ErrInvalidToken, http.StatusBadRequest, MsgInvalidToken},
	{ErrTokenExpired, http.StatusBadRequest, MsgTokenExpired},
	{ErrVerificationLocked, http.StatusTooManyRequests, MsgVerificationLocked},
	{ErrInvalidCredentials, http.StatusUnauthorized, MsgInvalidCredentials},
	{ErrNotVerified, http.StatusForbidden, MsgNotVerified},
	{db.ErrUnavailable, http.StatusInternalServerError, message.DBDown},
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	for _, e := range errorResponses {
		if errors.Is(err, e.err) {
			web.Fail(w, e.status, err, e.detail, nil)
			return
		}
	}

	if errx.IsContextError(err) {
		web.Fail(w, http.StatusInternalServerError, err, message.DBDown, nil)
		return
	}

	web.Fail(w, http.StatusInternalServerError, err, message.Unexpected, nil)
}
