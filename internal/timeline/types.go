// Package timeline shapes emotion-intensity samples into chart-ready data.
package timeline

// FallbackColor is substituted for samples that carry no display color.
const FallbackColor = "#8884d8"

// UnknownLabel is substituted for time slots that carry no label.
const UnknownLabel = "Unknown"

// TimeSlot is one labeled observation point containing multiple emotion samples.
// Slots are built once and never mutated.
type TimeSlot struct {
	Label    string
	Emotions []EmotionSample
}

// EmotionSample is one (name, intensity, color) measurement within a TimeSlot.
// Intensity is conceptually 0-100 but is never clamped.
type EmotionSample struct {
	Name      string
	Intensity float64
	Color     string
}

// ChartRow is the flattened, chart-ready record for one TimeSlot.
// Values holds one entry per emotion present in the slot; emotions missing
// from a slot are absent keys, never zero-filled.
type ChartRow struct {
	Time   string
	Values map[string]float64
}

// SeriesSpec describes one per-category bar series for the chart surface.
type SeriesSpec struct {
	DataKey string // key into ChartRow.Values
	Name    string // legend display name
	Color   string
	StackID string // non-empty only in stacked view
	Hidden  bool
}
