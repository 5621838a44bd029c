// Package results stores and aggregates per-recording emotion analysis results.
package results

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors.
var (
	ErrNotFound = errors.New("not found")
)

// Recording is one analyzed audio clip with its aggregated emotion scores.
type Recording struct {
	ID         uuid.UUID
	Filename   string
	RecordedAt time.Time
	Emotions   []EmotionScore
}

// EmotionScore is the aggregate of one emotion across all prosody
// predictions of a recording. Scores are 0-1 model outputs; PeakAt is the
// offset in seconds of the strongest prediction.
type EmotionScore struct {
	Name      string
	Score     float64 // mean across predictions
	PeakScore float64
	PeakAt    float64
}
