// Package insights generates short written insights from an emotion timeline.
package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/emokit/emotion-insights/internal/timeline"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-5-mini"

// Sentinel errors.
var (
	// ErrNoData is returned when the timeline has nothing to analyze.
	ErrNoData = errors.New("no emotion data available")

	// ErrMissingAPIKey is returned when OPENAI_API_KEY is not set.
	ErrMissingAPIKey = errors.New("missing OPENAI_API_KEY environment variable")
)

// Insight is the structured output of one analysis pass.
type Insight struct {
	Summary string `json:"summary" jsonschema_description:"1-2 sentence summary of the most significant emotional patterns"`
	Insight string `json:"insight" jsonschema_description:"A single, highly specific actionable insight"`
	Prompt  string `json:"prompt" jsonschema_description:"A thought-provoking journaling prompt related to the observed emotions"`

	// GeneratedAt is stamped locally, not requested from the model.
	GeneratedAt time.Time `json:"generated_at" jsonschema:"-"`
}

// Generator produces insights from an emotion timeline.
type Generator interface {
	Generate(ctx context.Context, slots []timeline.TimeSlot) (*Insight, error)
}

// Config holds insight generation configuration.
type Config struct {
	APIKey string
	Model  string
}

// LoadConfig reads insight configuration from environment variables.
// Returns ErrMissingAPIKey if OPENAI_API_KEY is not set. OPENAI_MODEL
// optionally overrides the default model.
func LoadConfig() (*Config, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = DefaultModel
	}

	return &Config{APIKey: apiKey, Model: model}, nil
}

// OpenAIGenerator implements Generator against the OpenAI responses API
// with a strict JSON schema output format.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
	schema map[string]any
}

// NewOpenAIGenerator creates a generator from the provided configuration.
func NewOpenAIGenerator(cfg *Config) *OpenAIGenerator {
	client := openai.NewClient(option.WithAPIKey(cfg.APIKey))
	return &OpenAIGenerator{
		client: &client,
		model:  cfg.Model,
		schema: insightSchema(),
	}
}

const systemPrompt = "You are an expert in emotional intelligence and personal growth. " +
	"Provide specific, actionable insights based on emotional patterns."

// Generate builds an insight for the given timeline.
// Returns ErrNoData when the timeline is empty.
func (g *OpenAIGenerator) Generate(ctx context.Context, slots []timeline.TimeSlot) (*Insight, error) {
	rows := timeline.ChartRows(slots)
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	input, err := buildPrompt(rows)
	if err != nil {
		return nil, err
	}

	params := responses.ResponseNewParams{
		Model:           g.model,
		MaxOutputTokens: openai.Int(500),
		Instructions:    openai.String(systemPrompt),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(input, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:        "Insight",
					Schema:      g.schema,
					Strict:      openai.Bool(true),
					Description: openai.String("Emotion insight JSON"),
					Type:        "json_schema",
				},
			},
		},
	}

	resp, err := callWithRetry(ctx, g.client, params)
	if err != nil {
		return nil, fmt.Errorf("calling insight model: %w", err)
	}

	var insight Insight
	if err := json.Unmarshal([]byte(resp.OutputText()), &insight); err != nil {
		return nil, fmt.Errorf("parsing insight response: %w", err)
	}
	insight.GeneratedAt = time.Now()

	return &insight, nil
}

// buildPrompt renders the chart rows as JSON inside the analysis request.
func buildPrompt(rows []timeline.ChartRow) (string, error) {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding timeline: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Based on the following emotional data, provide a brief analysis focusing on the most specific and actionable insights. ")
	sb.WriteString("Keep insights to 1-2 sentences and avoid generic advice. Focus on patterns that are unique to this emotional journey.\n\n")
	sb.WriteString("Emotional Data:\n")
	sb.Write(data)
	sb.WriteString("\n\nPlease provide:\n")
	sb.WriteString("1. A 1-2 sentence summary of the most significant emotional patterns\n")
	sb.WriteString("2. A single, highly specific actionable insight (not generic advice)\n")
	sb.WriteString("3. A thought-provoking journaling prompt that relates to the specific emotions observed\n")

	return sb.String(), nil
}

// insightSchema reflects the strict output schema for Insight.
func insightSchema() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	schema := reflector.Reflect(Insight{})

	b, err := schema.MarshalJSON()
	if err != nil {
		panic(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}

	markAllRequired(m)
	return m
}

// markAllRequired makes every object property required with no additional
// properties, as the strict response format demands.
func markAllRequired(schema map[string]any) {
	if t, ok := schema["type"].(string); ok && t == "object" {
		schema["additionalProperties"] = false
		if props, ok := schema["properties"].(map[string]any); ok {
			var required []string
			for name := range props {
				required = append(required, name)
			}
			if len(required) > 0 {
				schema["required"] = required
			}
			for _, p := range props {
				if pm, ok := p.(map[string]any); ok {
					markAllRequired(pm)
				}
			}
		}
	}
	if items, ok := schema["items"].(map[string]any); ok {
		markAllRequired(items)
	}
}
