package timeline

import "encoding/json"

// ChartRows flattens time slots into one chart row per well-formed slot.
// A slot is skipped entirely when its Emotions field is nil ("not an array");
// within a surviving slot, nameless samples are skipped. A missing label
// becomes UnknownLabel. The result is always non-nil.
func ChartRows(slots []TimeSlot) []ChartRow {
	rows := make([]ChartRow, 0, len(slots))

	for _, slot := range slots {
		if slot.Emotions == nil {
			continue
		}

		row := ChartRow{
			Time:   slot.Label,
			Values: make(map[string]float64, len(slot.Emotions)),
		}
		if row.Time == "" {
			row.Time = UnknownLabel
		}

		for _, e := range slot.Emotions {
			if e.Name == "" {
				continue
			}
			row.Values[e.Name] = e.Intensity
		}

		rows = append(rows, row)
	}

	return rows
}

// Categories returns the distinct non-empty emotion names across all slots,
// in order of first appearance. Duplicates contribute no second entry.
func Categories(slots []TimeSlot) []string {
	var names []string
	seen := make(map[string]bool)

	for _, slot := range slots {
		for _, e := range slot.Emotions {
			if e.Name == "" || seen[e.Name] {
				continue
			}
			seen[e.Name] = true
			names = append(names, e.Name)
		}
	}

	return names
}

// Colors maps each distinct emotion name to the color of the first sample
// that names it; later differing colors for the same name are ignored.
// Samples without a color get FallbackColor.
func Colors(slots []TimeSlot) map[string]string {
	colors := make(map[string]string)

	for _, slot := range slots {
		for _, e := range slot.Emotions {
			if e.Name == "" {
				continue
			}
			if _, ok := colors[e.Name]; ok {
				continue
			}
			color := e.Color
			if color == "" {
				color = FallbackColor
			}
			colors[e.Name] = color
		}
	}

	return colors
}

// rawSlot and rawSample mirror the loose JSON shape produced by the analysis
// pipeline. Pointer and any-typed fields let ParseTimeSlots distinguish
// missing and wrong-typed values from zero values.
type rawSlot struct {
	Time     *string         `json:"time"`
	Emotions json.RawMessage `json:"emotions"`
}

type rawSample struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// ParseTimeSlots decodes untrusted timeline JSON into well-formed slots,
// substituting documented defaults instead of reporting errors: the input
// not being an array yields an empty result; null or non-object elements are
// dropped; a slot whose emotions field is not an array is dropped; null or
// nameless samples are dropped; a missing label becomes UnknownLabel and a
// missing intensity becomes 0. Never returns an error; malformed input
// degrades to partial or empty output.
func ParseTimeSlots(data []byte) []TimeSlot {
	var rawSlots []json.RawMessage
	if err := json.Unmarshal(data, &rawSlots); err != nil {
		return []TimeSlot{}
	}

	slots := make([]TimeSlot, 0, len(rawSlots))

	for _, raw := range rawSlots {
		var rs rawSlot
		if err := json.Unmarshal(raw, &rs); err != nil {
			continue
		}

		var rawSamples []json.RawMessage
		if rs.Emotions == nil || json.Unmarshal(rs.Emotions, &rawSamples) != nil {
			continue
		}

		slot := TimeSlot{
			Label:    UnknownLabel,
			Emotions: make([]EmotionSample, 0, len(rawSamples)),
		}
		if rs.Time != nil && *rs.Time != "" {
			slot.Label = *rs.Time
		}

		for _, rawSam := range rawSamples {
			var sam rawSample
			if err := json.Unmarshal(rawSam, &sam); err != nil {
				continue
			}
			if sam.Name == "" {
				continue
			}
			slot.Emotions = append(slot.Emotions, EmotionSample{
				Name:      sam.Name,
				Intensity: sam.Value,
				Color:     sam.Color,
			})
		}

		slots = append(slots, slot)
	}

	return slots
}
