package prediction

import "time"

const displayLayout = "03:04 PM"

// View is a history entry as shown to the user.
type View struct {
	ID          string    `json:"id"`
	Disease     string    `json:"disease"`
	Confidence  float64   `json:"confidence"`
	ImageURL    string    `json:"image_url"`
	Timestamp   time.Time `json:"timestamp"`
	DisplayTime string    `json:"displayTime"`
}

// NewView projects p for display. The display time is the UTC timestamp
// shifted by a fixed offset, without any zone or DST rules.
func NewView(p Prediction, offset time.Duration) View {
	ts := p.CreatedAt.UTC()
	return View{
		ID:          p.ID.String(),
		Disease:     p.Label,
		Confidence:  p.Confidence,
		ImageURL:    p.ImageURL,
		Timestamp:   ts,
		DisplayTime: ts.Add(offset).Format(displayLayout),
	}
}
