package results

import (
	"sort"

	"github.com/emokit/emotion-insights/internal/hume"
)

// DefaultPeakThreshold marks an emotion as a peak when any single
// prediction scores above it.
const DefaultPeakThreshold = 0.7

// Aggregate collapses the per-segment prosody predictions of one recording
// into per-emotion aggregate scores: the mean score across predictions plus
// the strongest single score and its time offset. Output order is first
// appearance across predictions. Nameless emotion entries are skipped.
func Aggregate(predictions []hume.Prediction) []EmotionScore {
	var order []string
	sums := make(map[string]float64)
	counts := make(map[string]int)
	peaks := make(map[string]float64)
	peakTimes := make(map[string]float64)

	for _, pred := range predictions {
		for _, e := range pred.Emotions {
			if e.Name == "" {
				continue
			}
			if _, seen := counts[e.Name]; !seen {
				order = append(order, e.Name)
			}
			sums[e.Name] += e.Score
			counts[e.Name]++
			if e.Score > peaks[e.Name] {
				peaks[e.Name] = e.Score
				peakTimes[e.Name] = pred.Time.Begin
			}
		}
	}

	scores := make([]EmotionScore, 0, len(order))
	for _, name := range order {
		scores = append(scores, EmotionScore{
			Name:      name,
			Score:     sums[name] / float64(counts[name]),
			PeakScore: peaks[name],
			PeakAt:    peakTimes[name],
		})
	}

	return scores
}

// TopEmotions returns the n highest-scoring emotions, descending by score.
// Equal scores keep their input order. The input is not modified.
func TopEmotions(scores []EmotionScore, n int) []EmotionScore {
	sorted := make([]EmotionScore, len(scores))
	copy(sorted, scores)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Peaks returns the emotions whose strongest single prediction exceeded the
// threshold, in input order. A threshold <= 0 uses DefaultPeakThreshold.
func Peaks(scores []EmotionScore, threshold float64) []EmotionScore {
	if threshold <= 0 {
		threshold = DefaultPeakThreshold
	}

	var peaks []EmotionScore
	for _, s := range scores {
		if s.PeakScore > threshold {
			peaks = append(peaks, s)
		}
	}
	return peaks
}
