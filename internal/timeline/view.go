package timeline

// ViewType selects how the chart renders its series.
type ViewType string

const (
	// ViewAll shows every emotion series as grouped bars.
	ViewAll ViewType = "all"
	// ViewTop5 hides series that do not appear in the selected time slot.
	ViewTop5 ViewType = "top5"
	// ViewStacked stacks all series into a single bar per slot. No UI
	// control currently selects it, but it remains a supported value.
	ViewStacked ViewType = "stacked"
)

// AllTimes is the SelectedTime value meaning "no slot filter".
const AllTimes = "all"

// stackGroup is the stack id shared by every series in stacked view.
const stackGroup = "emotions"

// SelectionState holds the two axes of user selection. Each axis is replaced
// independently; the other is untouched.
type SelectionState struct {
	ViewType     ViewType
	SelectedTime string
}

// View derives the displayed row set and series specs for one fixture from
// its selection state. It owns the only mutable state in this package; the
// slots it is built over are never modified.
type View struct {
	slots      []TimeSlot
	rows       []ChartRow
	categories []string
	colors     map[string]string
	state      SelectionState
}

// NewView builds a view over the given slots with the initial selection
// (all, all). The derived rows, categories and colors are computed once;
// recomputing them per render would be equally correct, just wasteful.
func NewView(slots []TimeSlot) *View {
	return &View{
		slots:      slots,
		rows:       ChartRows(slots),
		categories: Categories(slots),
		colors:     Colors(slots),
		state: SelectionState{
			ViewType:     ViewAll,
			SelectedTime: AllTimes,
		},
	}
}

// State returns the current selection state.
func (v *View) State() SelectionState {
	return v.state
}

// SetViewType replaces the view-type axis, leaving the time axis untouched.
func (v *View) SetViewType(vt ViewType) {
	v.state.ViewType = vt
}

// SetSelectedTime replaces the time axis, leaving the view-type axis
// untouched.
func (v *View) SetSelectedTime(label string) {
	v.state.SelectedTime = label
}

// Categories returns the order-preserving category set for the fixture.
func (v *View) Categories() []string {
	return v.categories
}

// Colors returns the first-wins color map for the fixture.
func (v *View) Colors() map[string]string {
	return v.colors
}

// AllRows returns every chart row regardless of the time filter, for callers
// that need the full fixture (axis labels, phase detection) alongside the
// filtered display set.
func (v *View) AllRows() []ChartRow {
	return v.rows
}

// Rows returns the displayed row set: all rows when SelectedTime is
// AllTimes, otherwise only the row whose time label matches.
func (v *View) Rows() []ChartRow {
	if v.state.SelectedTime == AllTimes {
		return v.rows
	}

	filtered := make([]ChartRow, 0, 1)
	for _, row := range v.rows {
		if row.Time == v.state.SelectedTime {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// Series returns one spec per category, in category order. A series is
// hidden only in top5 view with a concrete selected time whose slot does not
// contain the category; hiding suppresses rendering without removing data
// from the rows. StackID groups all series into one stack in stacked view.
func (v *View) Series() []SeriesSpec {
	specs := make([]SeriesSpec, 0, len(v.categories))

	for _, name := range v.categories {
		spec := SeriesSpec{
			DataKey: name,
			Name:    name,
			Color:   v.colors[name],
		}
		if v.state.ViewType == ViewStacked {
			spec.StackID = stackGroup
		}
		if v.state.ViewType == ViewTop5 && v.state.SelectedTime != AllTimes {
			spec.Hidden = !v.slotContains(v.state.SelectedTime, name)
		}
		specs = append(specs, spec)
	}

	return specs
}

// slotContains reports whether the slot with the given label names the
// emotion.
func (v *View) slotContains(label, name string) bool {
	for _, slot := range v.slots {
		slotLabel := slot.Label
		if slotLabel == "" {
			slotLabel = UnknownLabel
		}
		if slotLabel != label {
			continue
		}
		for _, e := range slot.Emotions {
			if e.Name == name {
				return true
			}
		}
	}
	return false
}
