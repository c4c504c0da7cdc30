// Package remote implements the statistical entity source as a client of an
// external NER service. The service speaks a JSON entities contract: request
// texts in, entity mentions with character matches out.
package remote

import (
	"context"
	"fmt"
	"sort"

	"github.com/cobalt-ridge/gleaner/internal/engine/labeler"
)

const entitiesPath = "/entities"

type entityMatch struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

type entity struct {
	Name    string        `json:"name"`
	Label   string        `json:"label"`
	Matches []entityMatch `json:"matches"`
}

type requestRecord struct {
	UUID     string `json:"uuid"`
	Text     string `json:"text"`
	Language string `json:"language"`
}

type responseRecord struct {
	UUID     string   `json:"uuid"`
	Entities []entity `json:"entities"`
}

type entityRequest struct {
	Texts []requestRecord `json:"texts"`
}

type entityResponse struct {
	Texts []responseRecord `json:"texts"`
}

// Labeler tags text by calling a remote NER service.
type Labeler struct {
	client *Client
}

// New creates a remote Labeler for the service at endpoint.
func New(endpoint, token string) (*Labeler, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("remote: %w: endpoint not configured", labeler.ErrUnavailable)
	}
	return &Labeler{client: NewClient(endpoint, token)}, nil
}

// Label sends text to the service and converts its matches into spans.
// Matches with offsets outside the text bounds are dropped; span text is
// always taken from the local text, not the service payload.
func (l *Labeler) Label(ctx context.Context, text string) ([]labeler.Span, error) {
	req := entityRequest{Texts: []requestRecord{{UUID: "0", Text: text, Language: "en"}}}
	var resp entityResponse
	if err := l.client.PostJSON(ctx, entitiesPath, req, &resp); err != nil {
		return nil, fmt.Errorf("remote: %w", err)
	}
	if len(resp.Texts) == 0 {
		return nil, nil
	}

	var spans []labeler.Span
	for _, ent := range resp.Texts[0].Entities {
		for _, m := range ent.Matches {
			if m.Start < 0 || m.End > len(text) || m.Start >= m.End {
				continue
			}
			spans = append(spans, labeler.Span{
				Text:  text[m.Start:m.End],
				Start: m.Start,
				End:   m.End,
				Label: ent.Label,
			})
		}
	}
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans, nil
}

// Close is a no-op; the client holds no connection state.
func (l *Labeler) Close() error { return nil }

func init() {
	labeler.Register("remote", func(cfg labeler.Config) (labeler.Labeler, error) {
		return New(cfg.Endpoint, cfg.APIKey)
	})
}
