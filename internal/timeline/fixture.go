package timeline

// DefaultFixture returns the built-in demo timeline: five morning-to-lunch
// slots of prosody-derived emotion intensities. It builds a fresh value on
// every call so callers can never share or mutate a package-level slice.
func DefaultFixture() []TimeSlot {
	return []TimeSlot{
		{
			Label: "9am",
			Emotions: []EmotionSample{
				{Name: "Joy", Intensity: 85, Color: "#FFD700"},
				{Name: "Calm", Intensity: 70, Color: "#87CEEB"},
				{Name: "Gratitude", Intensity: 60, Color: "#DDA0DD"},
				{Name: "Interest", Intensity: 55, Color: "#98FB98"},
				{Name: "Contentment", Intensity: 50, Color: "#F0E68C"},
			},
		},
		{
			Label: "10am",
			Emotions: []EmotionSample{
				{Name: "Concentration", Intensity: 75, Color: "#4682B4"},
				{Name: "Calm", Intensity: 65, Color: "#87CEEB"},
				{Name: "Interest", Intensity: 60, Color: "#98FB98"},
				{Name: "Determination", Intensity: 55, Color: "#FF7F50"},
				{Name: "Satisfaction", Intensity: 45, Color: "#9ACD32"},
			},
		},
		{
			Label: "11am",
			Emotions: []EmotionSample{
				{Name: "Anxiety", Intensity: 70, Color: "#CD5C5C"},
				{Name: "Concentration", Intensity: 60, Color: "#4682B4"},
				{Name: "Distress", Intensity: 50, Color: "#B22222"},
				{Name: "Determination", Intensity: 48, Color: "#FF7F50"},
				{Name: "Calm", Intensity: 30, Color: "#87CEEB"},
			},
		},
		{
			Label: "12pm",
			Emotions: []EmotionSample{
				{Name: "Joy", Intensity: 75, Color: "#FFD700"},
				{Name: "Excitement", Intensity: 65, Color: "#FFA500"},
				{Name: "Amusement", Intensity: 55, Color: "#FF69B4"},
				{Name: "Satisfaction", Intensity: 50, Color: "#9ACD32"},
				{Name: "Calm", Intensity: 45, Color: "#87CEEB"},
			},
		},
		{
			Label: "1pm",
			Emotions: []EmotionSample{
				{Name: "Contentment", Intensity: 72, Color: "#F0E68C"},
				{Name: "Calm", Intensity: 68, Color: "#87CEEB"},
				{Name: "Joy", Intensity: 60, Color: "#FFD700"},
				{Name: "Relief", Intensity: 52, Color: "#20B2AA"},
				{Name: "Tiredness", Intensity: 40, Color: "#778899"},
			},
		},
	}
}
