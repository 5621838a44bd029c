package timeline

import "sort"

// TooltipEntry is one per-series value under the hover cursor, as handed
// over by the chart surface. Entries may be nil and fields may be absent.
type TooltipEntry struct {
	Name  string
	Value float64
	Fill  string
}

// TooltipLine is one rendered row of the tooltip: a color swatch plus
// "name: value", ranked by value.
type TooltipLine struct {
	Name  string
	Value float64
	Fill  string
}

// FormatTooltip turns an active hover payload into ranked tooltip lines.
// Nil entries and entries whose value is not strictly positive are dropped;
// survivors are sorted descending by value, equal values keeping their input
// order. A missing name renders as UnknownLabel. Returns nil, not an empty
// slice, when the tooltip is inactive, the payload is absent, or nothing
// survives filtering, so callers can distinguish "no tooltip" from "empty
// tooltip".
func FormatTooltip(active bool, payload []*TooltipEntry) []TooltipLine {
	if !active || payload == nil {
		return nil
	}

	var lines []TooltipLine
	for _, entry := range payload {
		if entry == nil || entry.Value <= 0 {
			continue
		}
		name := entry.Name
		if name == "" {
			name = UnknownLabel
		}
		lines = append(lines, TooltipLine{
			Name:  name,
			Value: entry.Value,
			Fill:  entry.Fill,
		})
	}

	if len(lines) == 0 {
		return nil
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Value > lines[j].Value
	})

	return lines
}
