package prediction

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/ferdiebergado/pneumodetect/internal/inference"
	"github.com/ferdiebergado/pneumodetect/internal/pkg/message"
	"github.com/ferdiebergado/pneumodetect/internal/pkg/web"
	"github.com/ferdiebergado/pneumodetect/internal/platform/db"
	"github.com/ferdiebergado/pneumodetect/internal/user"
)

const (
	MsgUserNotFound     = "User not found"
	MsgInvalidImage     = "Invalid image."
	MsgPredictionFailed = "Prediction failed"
	MsgFileTooLarge     = "File too large."

	formFieldFile = "file"
	maxFormMemory = 1 << 20
)

var errEmptyFile = errors.New("prediction: uploaded file is empty")

type Handler struct {
	svc            Service
	maxUploadBytes int64
}

func NewHandler(svc Service, maxUploadBytes int64) *Handler {
	return &Handler{svc: svc, maxUploadBytes: maxUploadBytes}
}

func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	email, ok := user.FromContext(r.Context())
	if !ok {
		web.Fail(w, http.StatusUnauthorized, errors.New("no user in context"), message.Unauthorized, nil)
		return
	}

	image, ok := h.readImage(w, r)
	if !ok {
		return
	}

	outcome, err := h.svc.Predict(r.Context(), email, image)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			web.Fail(w, http.StatusBadRequest, err, MsgUserNotFound, nil)
		case errors.Is(err, inference.ErrInvalidImage):
			web.Fail(w, http.StatusBadRequest, err, MsgInvalidImage, nil)
		case errors.Is(err, db.ErrUnavailable):
			web.Fail(w, http.StatusInternalServerError, err, message.DBDown, nil)
		default:
			web.Fail(w, http.StatusInternalServerError, err, message.Unexpected, nil)
		}
		return
	}

	web.OK(w, http.StatusOK, outcome)
}

// GuestPredict classifies without identity, upload or history.
func (h *Handler) GuestPredict(w http.ResponseWriter, r *http.Request) {
	image, ok := h.readImage(w, r)
	if !ok {
		return
	}

	outcome, err := h.svc.Guest(r.Context(), image)
	if err != nil {
		web.Fail(w, http.StatusBadRequest, err, MsgPredictionFailed, nil)
		return
	}

	web.OK(w, http.StatusOK, outcome)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	email, ok := user.FromContext(r.Context())
	if !ok {
		web.Fail(w, http.StatusUnauthorized, errors.New("no user in context"), message.Unauthorized, nil)
		return
	}

	views, err := h.svc.History(r.Context(), email)
	if err != nil {
		if errors.Is(err, db.ErrUnavailable) {
			web.Fail(w, http.StatusInternalServerError, err, message.DBDown, nil)
			return
		}
		web.Fail(w, http.StatusInternalServerError, err, message.Unexpected, nil)
		return
	}

	web.OK(w, http.StatusOK, &HistoryResponse{History: views})
}

// readImage reads the multipart "file" field. It writes the error response
// itself and reports false when the request cannot proceed.
func (h *Handler) readImage(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		if isTooLarge(err) {
			web.Fail(w, http.StatusRequestEntityTooLarge, err, MsgFileTooLarge, nil)
			return nil, false
		}
		web.Fail(w, http.StatusBadRequest, err, message.InvalidInput, map[string]string{formFieldFile: "is required"})
		return nil, false
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, _, err := r.FormFile(formFieldFile)
	if err != nil {
		web.Fail(w, http.StatusBadRequest, err, message.InvalidInput, map[string]string{formFieldFile: "is required"})
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		web.Fail(w, http.StatusBadRequest, fmt.Errorf("read uploaded file: %w", err), message.InvalidInput, nil)
		return nil, false
	}

	if len(data) == 0 {
		web.Fail(w, http.StatusBadRequest, errEmptyFile, MsgInvalidImage, nil)
		return nil, false
	}

	return data, true
}

func isTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr) || errors.Is(err, multipart.ErrMessageTooLarge)
}
