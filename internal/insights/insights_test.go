package insights

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/emokit/emotion-insights/internal/timeline"
)

func TestGenerateNoData(t *testing.T) {
	g := NewOpenAIGenerator(&Config{APIKey: "test", Model: DefaultModel})

	_, err := g.Generate(context.Background(), nil)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("Generate() error = %v, want ErrNoData", err)
	}
}

func TestBuildPrompt(t *testing.T) {
	rows := timeline.ChartRows([]timeline.TimeSlot{
		{Label: "9am", Emotions: []timeline.EmotionSample{
			{Name: "Joy", Intensity: 85},
		}},
	})

	prompt, err := buildPrompt(rows)
	if err != nil {
		t.Fatalf("buildPrompt() error = %v", err)
	}

	for _, want := range []string{"9am", "Joy", "85", "journaling prompt"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestInsightSchema(t *testing.T) {
	schema := insightSchema()

	if schema["type"] != "object" {
		t.Fatalf("schema type = %v, want object", schema["type"])
	}
	if schema["additionalProperties"] != false {
		t.Error("schema should forbid additional properties")
	}

	props, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatal("schema missing properties")
	}
	for _, field := range []string{"summary", "insight", "prompt"} {
		if _, ok := props[field]; !ok {
			t.Errorf("schema missing property %q", field)
		}
	}

	required, ok := schema["required"].([]string)
	if !ok {
		t.Fatal("schema missing required list")
	}
	if len(required) != len(props) {
		t.Errorf("required has %d entries, want %d (all properties)", len(required), len(props))
	}
}

func TestRetryErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		rateLimit bool
		server    bool
	}{
		{name: "429", err: errors.New("http 429 Too Many Requests"), rateLimit: true},
		{name: "rate limit text", err: errors.New("rate limit reached"), rateLimit: true},
		{name: "500", err: errors.New("got 500 from upstream"), server: true},
		{name: "server_error", err: errors.New("type: server_error"), server: true},
		{name: "other", err: errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRateLimitError(tt.err); got != tt.rateLimit {
				t.Errorf("isRateLimitError() = %v, want %v", got, tt.rateLimit)
			}
			if got := isServerError(tt.err); got != tt.server {
				t.Errorf("isServerError() = %v, want %v", got, tt.server)
			}
		})
	}
}
