package prediction

import (
	"context"
	"fmt"

	"github.com/ferdiebergado/pneumodetect/internal/platform/db"
)

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(db db.Executor) *SQLRepository {
	return &SQLRepository{db: db}
}

const queryRecord = `
INSERT INTO predictions (id, user_id, label, confidence, image_url, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

func (r *SQLRepository) Record(ctx context.Context, p *Prediction) error {
	_, err := r.db.ExecContext(ctx, queryRecord,
		p.ID, p.UserID, p.Label, p.Confidence, p.ImageURL, p.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("%w: record prediction %s: %w", db.ErrUnavailable, p.ID, err)
	}
	return nil
}

const queryListByEmail = `
SELECT p.id, p.user_id, p.label, p.confidence, p.image_url, p.created_at
FROM predictions p
JOIN users u ON u.id = p.user_id
WHERE u.email = $1
ORDER BY p.created_at DESC, p.id DESC
LIMIT $2`

// ListByEmail returns the newest predictions of the user first.
// An unknown email yields an empty slice.
func (r *SQLRepository) ListByEmail(ctx context.Context, email string, limit int) ([]Prediction, error) {
	rows, err := r.db.QueryContext(ctx, queryListByEmail, email, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list predictions: %w", db.ErrUnavailable, err)
	}
	defer rows.Close()

	predictions := make([]Prediction, 0)
	for rows.Next() {
		var p Prediction
		if err := rows.Scan(&p.ID, &p.UserID, &p.Label, &p.Confidence, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		p.CreatedAt = p.CreatedAt.UTC()
		predictions = append(predictions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate predictions: %w", db.ErrUnavailable, err)
	}

	return predictions, nil
}
