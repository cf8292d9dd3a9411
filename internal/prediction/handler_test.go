package prediction_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferdiebergado/pneumodetect/internal/inference"
	"github.com/ferdiebergado/pneumodetect/internal/pkg/message"
	"github.com/ferdiebergado/pneumodetect/internal/pkg/web"
	"github.com/ferdiebergado/pneumodetect/internal/platform/db"
	"github.com/ferdiebergado/pneumodetect/internal/platform/storage"
	"github.com/ferdiebergado/pneumodetect/internal/prediction"
	"github.com/ferdiebergado/pneumodetect/internal/user"
)

func TestHandler_Predict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		signedIn   bool
		field      string
		data       []byte
		err        error
		wantCode   int
		wantDetail string
	}{
		{"Successful prediction", true, "file", []byte("png"), nil, http.StatusOK, ""},
		{"No session user", false, "file", []byte("png"), nil, http.StatusUnauthorized, message.Unauthorized},
		{"Missing file field", true, "upload", []byte("png"), nil, http.StatusBadRequest, message.InvalidInput},
		{"Empty file", true, "file", []byte{}, nil, http.StatusBadRequest, prediction.MsgInvalidImage},
		{"File too large", true, "file", bytes.Repeat([]byte("x"), 4096), nil, http.StatusRequestEntityTooLarge, prediction.MsgFileTooLarge},
		{"User vanished", true, "file", []byte("png"), prediction.ErrUserNotFound, http.StatusBadRequest, prediction.MsgUserNotFound},
		{"Undecodable image", true, "file", []byte("png"), fmt.Errorf("classify image: %w", inference.ErrInvalidImage), http.StatusBadRequest, prediction.MsgInvalidImage},
		{"Database down", true, "file", []byte("png"), fmt.Errorf("record prediction: %w", db.ErrUnavailable), http.StatusInternalServerError, message.DBDown},
		{"Storage down", true, "file", []byte("png"), fmt.Errorf("upload image: %w", storage.ErrUnavailable), http.StatusInternalServerError, message.Unexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &prediction.StubService{
				PredictFunc: func(ctx context.Context, email string, image []byte) (*prediction.Outcome, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &prediction.Outcome{
						Disease:    "Pneumonia",
						Confidence: 87.66,
						ImageURL:   "https://cdn.example.com/a.png",
						Timestamp:  fixedNow,
					}, nil
				},
			}

			handler := prediction.NewHandler(svc, testConfig().Server.MaxUploadBytes)
			req := newUploadRequest(t, "/predict", tt.field, tt.data)
			if tt.signedIn {
				req = req.WithContext(user.NewContextWithUser(req.Context(), "alice@example.com"))
			}
			rec := httptest.NewRecorder()
			handler.Predict(rec, req)

			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.wantCode {
				t.Errorf("res.StatusCode = %d, want: %d", res.StatusCode, tt.wantCode)
			}

			body := web.DecodeJSONResponse(t, res)
			if tt.wantCode != http.StatusOK {
				if body["detail"] != tt.wantDetail {
					t.Errorf("body[detail] = %v, want: %q", body["detail"], tt.wantDetail)
				}
				return
			}

			if body["disease"] != "Pneumonia" || body["confidence"] != 87.66 {
				t.Errorf("body = %v, want Pneumonia at 87.66", body)
			}

			if body["timestamp"] != "2025-06-01T20:15:00Z" {
				t.Errorf("body[timestamp] = %v, want: %q", body["timestamp"], "2025-06-01T20:15:00Z")
			}
		})
	}
}

func TestHandler_GuestPredict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantDetail string
	}{
		{"Successful guest prediction", nil, http.StatusOK, ""},
		{"Undecodable image", inference.ErrInvalidImage, http.StatusBadRequest, prediction.MsgPredictionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &prediction.StubService{
				GuestFunc: func(ctx context.Context, image []byte) (*prediction.GuestOutcome, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &prediction.GuestOutcome{Disease: "Normal", Confidence: 91.2}, nil
				},
			}

			handler := prediction.NewHandler(svc, testConfig().Server.MaxUploadBytes)
			rec := httptest.NewRecorder()
			handler.GuestPredict(rec, newUploadRequest(t, "/guest-predict", "file", []byte("png")))

			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.wantCode {
				t.Errorf("res.StatusCode = %d, want: %d", res.StatusCode, tt.wantCode)
			}

			body := web.DecodeJSONResponse(t, res)
			if tt.err != nil {
				if body["detail"] != tt.wantDetail {
					t.Errorf("body[detail] = %v, want: %q", body["detail"], tt.wantDetail)
				}
				return
			}

			if _, ok := body["image_url"]; ok {
				t.Errorf("body = %v, want no image_url for guests", body)
			}

			if body["disease"] != "Normal" || body["confidence"] != 91.2 {
				t.Errorf("body = %v, want Normal at 91.2", body)
			}
		})
	}
}

func TestHandler_History(t *testing.T) {
	t.Parallel()

	svc := &prediction.StubService{
		HistoryFunc: func(ctx context.Context, email string) ([]prediction.View, error) {
			return []prediction.View{}, nil
		},
	}

	handler := prediction.NewHandler(svc, testConfig().Server.MaxUploadBytes)
	req := httptest.NewRequest(http.MethodGet, "/history", http.NoBody)
	req = req.WithContext(user.NewContextWithUser(req.Context(), "alice@example.com"))
	rec := httptest.NewRecorder()
	handler.History(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Errorf("res.StatusCode = %d, want: %d", res.StatusCode, http.StatusOK)
	}

	body := web.DecodeJSONResponse(t, res)
	history, ok := body["history"].([]any)
	if !ok || len(history) != 0 {
		t.Errorf("body[history] = %v, want an empty list", body["history"])
	}
}
