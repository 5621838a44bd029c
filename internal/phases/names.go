package phases

import (
	"fmt"
	"strings"
)

// positiveEmotions classifies prosody emotions by valence for phase naming.
// Emotions absent from this map count as neither positive nor negative.
var positiveEmotions = map[string]bool{
	"Joy":           true,
	"Calm":          true,
	"Calmness":      true,
	"Gratitude":     true,
	"Interest":      true,
	"Contentment":   true,
	"Satisfaction":  true,
	"Excitement":    true,
	"Amusement":     true,
	"Relief":        true,
	"Determination": true,
	"Anxiety":       false,
	"Distress":      false,
	"Sadness":       false,
	"Anger":         false,
	"Fear":          false,
	"Tiredness":     false,
	"Boredom":       false,
}

// generatePhaseName creates a descriptive name from a phase centroid.
// Uses a 2x2 intensity/positivity quadrant system with the dominant
// emotions appended.
//
// Quadrants:
//   - High intensity + positive = "Bright & Energized"
//   - High intensity + negative = "Tense & Charged"
//   - Low intensity  + positive = "Bright & Settled"
//   - Low intensity  + negative = "Muted & Heavy"
func generatePhaseName(centroid map[string]float64, top []string) string {
	var total, positive, negative, peak float64
	for name, v := range centroid {
		if v <= 0 {
			continue
		}
		total += v
		if v > peak {
			peak = v
		}
		if pos, ok := positiveEmotions[name]; ok {
			if pos {
				positive += v
			} else {
				negative += v
			}
		}
	}

	highIntensity := peak > 60
	upbeat := positive >= negative

	var baseName string
	switch {
	case highIntensity && upbeat:
		baseName = "Bright & Energized"
	case highIntensity && !upbeat:
		baseName = "Tense & Charged"
	case !highIntensity && upbeat:
		baseName = "Bright & Settled"
	default: // low intensity, negative lean
		baseName = "Muted & Heavy"
	}

	if total == 0 {
		baseName = "Quiet"
	}

	if len(top) == 0 {
		return baseName
	}
	return fmt.Sprintf("%s (%s)", baseName, strings.Join(top, ", "))
}
