package ner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"resume-analyzer/internal/shared/telemetry"
)

const defaultGeminiModel = "gemini-2.5-flash"

const tagPrompt = `Extract named entities from the document below.
Return only a JSON array. Each element is an object {"text": "...", "label": "..."}.
"text" must be copied exactly from the document. Use label ORG for companies and
organizations, PRODUCT for technologies, tools, programming languages and products,
DATE for dates, date ranges and durations. Skip everything else.
List entities in the order they appear.

Document:
`

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiTagger asks a Gemini model for entities.
type GeminiTagger struct {
	models contentGenerator
	model  string
	logger *zap.Logger
}

// NewGeminiTagger creates a tagger backed by the Gemini API.
func NewGeminiTagger(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiTagger, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newGeminiTagger(client.Models, model, logger), nil
}

func newGeminiTagger(models contentGenerator, model string, logger *zap.Logger) *GeminiTagger {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultGeminiModel
	}
	logger = telemetry.OrNop(logger)
	return &GeminiTagger{models: models, model: model, logger: logger}
}

func (t *GeminiTagger) Name() string { return "gemini" }

// Tag labels text using the model. Dates found locally override model spans
// they overlap.
func (t *GeminiTagger) Tag(ctx context.Context, text string) ([]Entity, error) {
	if strings.TrimSpace(text) == "" {
		return make([]Entity, 0), nil
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0),
		ResponseMIMEType: "application/json",
	}
	resp, err := t.models.GenerateContent(ctx, t.model, genai.Text(tagPrompt+text), cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: generate content: %v", ErrTagging, err)
	}

	raw := responseText(resp)
	if raw == "" {
		return nil, fmt.Errorf("%w: gemini returned empty response", ErrTagging)
	}

	var items []struct {
		Text  string `json:"text"`
		Label string `json:"label"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &items); err != nil {
		t.logger.Debug("ner.gemini_unparsable", zap.String("raw", raw))
		return nil, fmt.Errorf("%w: parse gemini response: %v", ErrTagging, err)
	}

	spans := make([]span, 0, len(items))
	for _, it := range items {
		label := strings.ToUpper(strings.TrimSpace(it.Label))
		if label == "" {
			continue
		}
		spans = append(spans, span{text: it.Text, label: label})
	}
	located := locate(text, spans)
	if dropped := len(spans) - len(located); dropped > 0 {
		t.logger.Debug("ner.gemini_spans_dropped", zap.Int("count", dropped))
	}
	return merge(FindDates(text), located), nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || strings.TrimSpace(part.Text) == "" {
				continue
			}
			builder.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(builder.String())
}

func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}
