// Package genai implements the statistical entity source over the Gemini
// API. The model returns mention/label pairs as schema-constrained JSON;
// spans are then located by forward substring search in the original text,
// so offsets always come from the text itself, never from the model.
package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/cobalt-ridge/gleaner/internal/engine/labeler"
)

const defaultModel = "gemini-2.5-flash"

var systemInstruction = `You are a named-entity tagger for news text.
Extract every entity mention from the text you are given. Label each mention
with exactly one of: PERSON, ORG, GPE, LOC, FAC, DATE, TIME, MONEY, EVENT.
Report each mention exactly as it appears in the text, character for
character, in order of first appearance. Do not merge, translate, or
normalize mentions.`

// mention is one model-reported entity occurrence.
type mention struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

type response struct {
	Mentions []mention `json:"mentions"`
}

// Labeler tags text by prompting a Gemini model.
type Labeler struct {
	client *genai.Client
	model  string
}

// New creates a Gemini-backed Labeler. model may be empty to use the default.
func New(apiKey, model string) (*Labeler, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("genai: %w: api key not configured", labeler.ErrUnavailable)
	}
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai: failed to create client: %w", err)
	}
	return &Labeler{client: client, model: model}, nil
}

// Label asks the model for mentions and resolves them to spans.
func (l *Labeler) Label(ctx context.Context, text string) ([]labeler.Span, error) {
	contents := []*genai.Content{
		{Role: "system", Parts: []*genai.Part{{Text: systemInstruction}}},
		{Role: "user", Parts: []*genai.Part{{Text: text}}},
	}

	resp, err := l.client.Models.GenerateContent(ctx, l.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("genai: generate failed: %w", err)
	}

	var parsed response
	if err := json.Unmarshal([]byte(resp.Text()), &parsed); err != nil {
		return nil, fmt.Errorf("genai: bad response JSON: %w", err)
	}

	return locateSpans(text, parsed.Mentions), nil
}

// locateSpans resolves each mention to its position in text by forward
// substring search. Mentions that cannot be found are dropped; a mention
// found only behind the cursor is emitted without advancing it.
func locateSpans(text string, mentions []mention) []labeler.Span {
	var spans []labeler.Span
	cursor := 0
	for _, m := range mentions {
		if m.Text == "" || m.Label == "" {
			continue
		}
		start := -1
		if cursor <= len(text) {
			if i := strings.Index(text[cursor:], m.Text); i >= 0 {
				start = cursor + i
			}
		}
		advance := start >= 0
		if start < 0 {
			start = strings.Index(text, m.Text)
		}
		if start < 0 {
			continue
		}
		end := start + len(m.Text)
		spans = append(spans, labeler.Span{
			Text:  m.Text,
			Start: start,
			End:   end,
			Label: m.Label,
		})
		if advance {
			cursor = end
		}
	}
	return spans
}

func responseSchema() *genai.Schema {
	mentionSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"text":  {Type: genai.TypeString, Description: "The mention exactly as it appears in the input."},
			"label": {Type: genai.TypeString, Description: "One of the allowed entity labels."},
		},
		Required: []string{"text", "label"},
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"mentions": {
				Type:  genai.TypeArray,
				Items: mentionSchema,
			},
		},
		Required: []string{"mentions"},
	}
}

// Close is a no-op; the client holds no connection state.
func (l *Labeler) Close() error { return nil }

func init() {
	labeler.Register("genai", func(cfg labeler.Config) (labeler.Labeler, error) {
		return New(cfg.APIKey, cfg.Model)
	})
}
