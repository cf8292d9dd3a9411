package prediction

import (
	"time"

	"github.com/google/uuid"
)

// Prediction is an immutable history row.
type Prediction struct {
	ID         uuid.UUID
	UserID     int64
	Label      string
	Confidence float64
	ImageURL   string
	CreatedAt  time.Time
}

// Outcome is returned to an authenticated user after a prediction is recorded.
type Outcome struct {
	Disease    string    `json:"disease"`
	Confidence float64   `json:"confidence"`
	ImageURL   string    `json:"image_url"`
	Timestamp  time.Time `json:"timestamp"`
}

// GuestOutcome carries only the classification.
type GuestOutcome struct {
	Disease    string  `json:"disease"`
	Confidence float64 `json:"confidence"`
}

type HistoryResponse struct {
	History []View `json:"history"`
}
