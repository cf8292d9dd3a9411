package user

import (
	"errors"
	"net/http"

	"github.com/ferdiebergado/pneumodetect/internal/pkg/message"
	"github.com/ferdiebergado/pneumodetect/internal/pkg/web"
	"github.com/ferdiebergado/pneumodetect/internal/platform/db"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type MeResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Me returns the profile of the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	email, ok := FromContext(r.Context())
	if !ok {
		web.Fail(w, http.StatusUnauthorized, errors.New("no user in context"), message.Unauthorized, nil)
		return
	}

	u, err := h.svc.FindByEmail(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			web.Fail(w, http.StatusNotFound, err, "User not found", nil)
		case errors.Is(err, db.ErrUnavailable):
			web.Fail(w, http.StatusInternalServerError, err, message.DBDown, nil)
		default:
			web.Fail(w, http.StatusInternalServerError, err, message.Unexpected, nil)
		}
		return
	}

	web.OK(w, http.StatusOK, &MeResponse{Username: u.Username, Email: u.Email})
}
