package prediction_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ferdiebergado/pneumodetect/internal/inference"
	"github.com/ferdiebergado/pneumodetect/internal/platform/storage"
	"github.com/ferdiebergado/pneumodetect/internal/prediction"
	"github.com/ferdiebergado/pneumodetect/internal/user"
)

func TestService_Predict(t *testing.T) {
	t.Parallel()

	alice := &user.User{ID: 7, Email: "alice@example.com", IsVerified: true}

	tests := []struct {
		name        string
		findErr     error
		classifyErr error
		uploadErr   error
		wantErr     error
		wantRecord  bool
	}{
		{"Prediction is uploaded and recorded", nil, nil, nil, nil, true},
		{"Unknown user", user.ErrNotFound, nil, nil, prediction.ErrUserNotFound, false},
		{"Invalid image", nil, fmt.Errorf("%w: decode", inference.ErrInvalidImage), nil, inference.ErrInvalidImage, false},
		{"Storage down", nil, nil, storage.ErrUnavailable, storage.ErrUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userSvc := &user.StubService{
				FindByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
					if tt.findErr != nil {
						return nil, tt.findErr
					}
					return alice, nil
				},
			}

			classifier := &inference.StubClassifier{
				ClassifyFunc: func(ctx context.Context, image []byte) (inference.Result, error) {
					return inference.Result{Label: "Pneumonia", Confidence: 87.66}, tt.classifyErr
				},
			}

			var uploadedTo string
			store := &storage.StubStore{
				UploadFunc: func(ctx context.Context, folder string, data []byte) (string, error) {
					uploadedTo = folder
					if tt.uploadErr != nil {
						return "", tt.uploadErr
					}
					return "https://cdn.example.com/PneumoDetect/a.png", nil
				},
			}

			var recorded *prediction.Prediction
			repo := &prediction.StubRepo{
				RecordFunc: func(ctx context.Context, p *prediction.Prediction) error {
					recorded = p
					return nil
				},
			}

			svc := prediction.NewService(repo, &prediction.Provider{
				Cfg:        testConfig(),
				UserSvc:    userSvc,
				Classifier: classifier,
				Store:      store,
				Clock:      func() time.Time { return fixedNow },
			})

			outcome, err := svc.Predict(t.Context(), alice.Email, []byte("image"))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("svc.Predict() = %v, want: %v", err, tt.wantErr)
			}

			if (recorded != nil) != tt.wantRecord {
				t.Fatalf("recorded = %+v, want record: %t", recorded, tt.wantRecord)
			}

			if !tt.wantRecord {
				return
			}

			if uploadedTo != "PneumoDetect" {
				t.Errorf("uploadedTo = %q, want: %q", uploadedTo, "PneumoDetect")
			}

			if recorded.UserID != alice.ID || recorded.Label != "Pneumonia" || recorded.Confidence != 87.66 {
				t.Errorf("recorded = %+v, want a Pneumonia row for user %d", recorded, alice.ID)
			}

			want := &prediction.Outcome{
				Disease:    "Pneumonia",
				Confidence: 87.66,
				ImageURL:   "https://cdn.example.com/PneumoDetect/a.png",
				Timestamp:  fixedNow,
			}
			if *outcome != *want {
				t.Errorf("outcome = %+v, want: %+v", outcome, want)
			}
		})
	}
}

func TestService_GuestSkipsUploadAndHistory(t *testing.T) {
	t.Parallel()

	classifier := &inference.StubClassifier{
		ClassifyFunc: func(ctx context.Context, image []byte) (inference.Result, error) {
			return inference.Result{Label: "Normal", Confidence: 91.2}, nil
		},
	}

	svc := prediction.NewService(&prediction.StubRepo{}, &prediction.Provider{
		Cfg:        testConfig(),
		UserSvc:    &user.StubService{},
		Classifier: classifier,
		Store:      &storage.StubStore{},
	})

	outcome, err := svc.Guest(t.Context(), []byte("image"))
	if err != nil {
		t.Fatalf("svc.Guest() = %v, want: nil", err)
	}

	want := prediction.GuestOutcome{Disease: "Normal", Confidence: 91.2}
	if *outcome != want {
		t.Errorf("outcome = %+v, want: %+v", outcome, want)
	}
}

func TestService_History(t *testing.T) {
	t.Parallel()

	var gotLimit int
	repo := &prediction.StubRepo{
		ListByEmailFunc: func(ctx context.Context, email string, limit int) ([]prediction.Prediction, error) {
			gotLimit = limit
			return []prediction.Prediction{
				{Label: "Normal", Confidence: 60, CreatedAt: fixedNow},
			}, nil
		},
	}

	svc := prediction.NewService(repo, &prediction.Provider{Cfg: testConfig()})

	views, err := svc.History(t.Context(), "alice@example.com")
	if err != nil {
		t.Fatalf("svc.History() = %v, want: nil", err)
	}

	if gotLimit != 100 {
		t.Errorf("limit = %d, want: %d", gotLimit, 100)
	}

	if len(views) != 1 || views[0].DisplayTime != "01:15 AM" {
		t.Errorf("views = %+v, want one entry displayed at 01:15 AM", views)
	}
}
