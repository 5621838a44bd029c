package timeline

import (
	"reflect"
	"testing"
)

func TestViewInitialState(t *testing.T) {
	v := NewView(DefaultFixture())

	want := SelectionState{ViewType: ViewAll, SelectedTime: AllTimes}
	if v.State() != want {
		t.Errorf("initial state = %+v, want %+v", v.State(), want)
	}
}

func TestViewSelectionFilter(t *testing.T) {
	v := NewView(DefaultFixture())

	v.SetSelectedTime("12pm")

	rows := v.Rows()
	if len(rows) != 1 {
		t.Fatalf("Rows() returned %d rows, want 1", len(rows))
	}
	if rows[0].Time != "12pm" {
		t.Errorf("Rows()[0].Time = %q, want %q", rows[0].Time, "12pm")
	}

	// Setting back to "all" restores the full row set.
	v.SetSelectedTime(AllTimes)
	if got := len(v.Rows()); got != 5 {
		t.Errorf("Rows() after reset returned %d rows, want 5", got)
	}
}

func TestViewAllRowsIgnoresFilter(t *testing.T) {
	v := NewView(DefaultFixture())

	v.SetSelectedTime("12pm")

	all := v.AllRows()
	if len(all) != 5 {
		t.Fatalf("AllRows() returned %d rows, want 5", len(all))
	}
	if !reflect.DeepEqual(all, ChartRows(DefaultFixture())) {
		t.Errorf("AllRows() = %+v, want the unfiltered row set", all)
	}
}

func TestViewAxesIndependent(t *testing.T) {
	v := NewView(DefaultFixture())

	v.SetSelectedTime("11am")
	v.SetViewType(ViewTop5)

	if v.State().SelectedTime != "11am" {
		t.Errorf("SetViewType clobbered SelectedTime: got %q", v.State().SelectedTime)
	}

	v.SetSelectedTime("9am")
	if v.State().ViewType != ViewTop5 {
		t.Errorf("SetSelectedTime clobbered ViewType: got %q", v.State().ViewType)
	}
}

func TestViewTop5Visibility(t *testing.T) {
	v := NewView(DefaultFixture())
	v.SetViewType(ViewTop5)
	v.SetSelectedTime("11am")

	hidden := make(map[string]bool)
	for _, s := range v.Series() {
		hidden[s.DataKey] = s.Hidden
	}

	// Gratitude only appears at 9am; Anxiety appears at 11am.
	if !hidden["Gratitude"] {
		t.Error("Gratitude should be hidden when 11am is selected in top5 view")
	}
	if hidden["Anxiety"] {
		t.Error("Anxiety should be visible when 11am is selected in top5 view")
	}
}

func TestViewTop5AllTimesShowsEverything(t *testing.T) {
	v := NewView(DefaultFixture())
	v.SetViewType(ViewTop5)

	for _, s := range v.Series() {
		if s.Hidden {
			t.Errorf("series %q hidden in top5 view with no time filter", s.DataKey)
		}
	}
}

func TestViewSeries(t *testing.T) {
	slots := []TimeSlot{
		{Label: "9am", Emotions: []EmotionSample{
			{Name: "Joy", Intensity: 85, Color: "#FFD700"},
			{Name: "Calm", Intensity: 70, Color: "#87CEEB"},
		}},
	}

	tests := []struct {
		name     string
		viewType ViewType
		want     []SeriesSpec
	}{
		{
			name:     "all view has no stack ids and nothing hidden",
			viewType: ViewAll,
			want: []SeriesSpec{
				{DataKey: "Joy", Name: "Joy", Color: "#FFD700"},
				{DataKey: "Calm", Name: "Calm", Color: "#87CEEB"},
			},
		},
		{
			name:     "stacked view shares one stack group",
			viewType: ViewStacked,
			want: []SeriesSpec{
				{DataKey: "Joy", Name: "Joy", Color: "#FFD700", StackID: "emotions"},
				{DataKey: "Calm", Name: "Calm", Color: "#87CEEB", StackID: "emotions"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView(slots)
			v.SetViewType(tt.viewType)

			got := v.Series()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Series() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestViewSeriesOrderMatchesCategories(t *testing.T) {
	v := NewView(DefaultFixture())

	categories := v.Categories()
	series := v.Series()

	if len(series) != len(categories) {
		t.Fatalf("len(Series()) = %d, want %d", len(series), len(categories))
	}
	for i, s := range series {
		if s.DataKey != categories[i] {
			t.Errorf("Series()[%d].DataKey = %q, want %q", i, s.DataKey, categories[i])
		}
	}
}

func TestViewUnknownLabelMatchable(t *testing.T) {
	slots := []TimeSlot{
		{Emotions: []EmotionSample{{Name: "Joy", Intensity: 10}}},
	}

	v := NewView(slots)
	v.SetViewType(ViewTop5)
	v.SetSelectedTime(UnknownLabel)

	rows := v.Rows()
	if len(rows) != 1 || rows[0].Time != UnknownLabel {
		t.Fatalf("Rows() = %#v, want single Unknown row", rows)
	}

	for _, s := range v.Series() {
		if s.DataKey == "Joy" && s.Hidden {
			t.Error("Joy should be visible for the Unknown slot it appears in")
		}
	}
}
