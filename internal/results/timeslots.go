package results

import (
	"github.com/emokit/emotion-insights/internal/timeline"
)

// DefaultTopN is how many emotions of a recording make it onto the chart.
const DefaultTopN = 5

// slot labels use clock time, matching the chart axis ("9:05am").
const slotTimeFormat = "3:04pm"

// palette assigns each known prosody emotion a stable display color.
// Emotions outside the palette fall back to the timeline's fallback token.
var palette = map[string]string{
	"Joy":           "#FFD700",
	"Calm":          "#87CEEB",
	"Calmness":      "#87CEEB",
	"Gratitude":     "#DDA0DD",
	"Interest":      "#98FB98",
	"Contentment":   "#F0E68C",
	"Concentration": "#4682B4",
	"Determination": "#FF7F50",
	"Satisfaction":  "#9ACD32",
	"Anxiety":       "#CD5C5C",
	"Distress":      "#B22222",
	"Excitement":    "#FFA500",
	"Amusement":     "#FF69B4",
	"Relief":        "#20B2AA",
	"Tiredness":     "#778899",
	"Sadness":       "#6A5ACD",
	"Anger":         "#DC143C",
	"Fear":          "#8B008B",
	"Surprise":      "#FF8C00",
	"Boredom":       "#A9A9A9",
}

// PaletteColor returns the display color for an emotion name, or the
// timeline fallback token for names outside the palette.
func PaletteColor(name string) string {
	if c, ok := palette[name]; ok {
		return c
	}
	return timeline.FallbackColor
}

// TimeSlots converts stored recordings into chart time slots, oldest first.
// Each slot carries the recording's topN emotions (all of them when
// topN <= 0) with scores scaled to 0-100 intensities and palette colors.
func TimeSlots(recordings []Recording, topN int) []timeline.TimeSlot {
	slots := make([]timeline.TimeSlot, 0, len(recordings))

	// List returns newest first; the chart axis runs oldest to newest.
	for i := len(recordings) - 1; i >= 0; i-- {
		rec := recordings[i]

		top := TopEmotions(rec.Emotions, topN)
		emotions := make([]timeline.EmotionSample, 0, len(top))
		for _, e := range top {
			emotions = append(emotions, timeline.EmotionSample{
				Name:      e.Name,
				Intensity: e.Score * 100,
				Color:     PaletteColor(e.Name),
			})
		}

		slots = append(slots, timeline.TimeSlot{
			Label:    rec.RecordedAt.Format(slotTimeFormat),
			Emotions: emotions,
		})
	}

	return slots
}
