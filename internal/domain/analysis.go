package domain

import "time"

// Severity of an accessibility finding
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Box is a region of the analysed image in fractions of its width and height
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Clamp keeps the box inside the unit square
func (b Box) Clamp() Box {
	b.X = clamp01(b.X)
	b.Y = clamp01(b.Y)
	b.Width = clamp01(b.Width)
	b.Height = clamp01(b.Height)
	if b.X+b.Width > 1 {
		b.Width = 1 - b.X
	}
	if b.Y+b.Height > 1 {
		b.Height = 1 - b.Y
	}
	return b
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Annotation is one finding drawn over the screenshot
type Annotation struct {
	Issue      string   `json:"issue"`
	Criterion  string   `json:"criterion"`
	Severity   Severity `json:"severity"`
	Suggestion string   `json:"suggestion"`
	Box        Box      `json:"box"`
}

// Analysis is the checker result for one uploaded image
type Analysis struct {
	ID          string       `json:"id"`
	UserID      string       `json:"-"`
	Summary     string       `json:"summary"`
	Score       int          `json:"score"`
	Annotations []Annotation `json:"annotations"`
	ImageMIME   string       `json:"imageMime"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// Normalize clamps boxes, the score and unknown severities in place
func (a *Analysis) Normalize() {
	if a.Score < 0 {
		a.Score = 0
	}
	if a.Score > 100 {
		a.Score = 100
	}
	for i := range a.Annotations {
		a.Annotations[i].Box = a.Annotations[i].Box.Clamp()
		switch a.Annotations[i].Severity {
		case SeverityLow, SeverityMedium, SeverityHigh:
		default:
			a.Annotations[i].Severity = SeverityMedium
		}
	}
}
