package gleaner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// newNull builds a Gleaner on the null source so tests exercise the
// pattern rules deterministically, without model assets or network.
func newNull(t *testing.T, opts ...Option) *Gleaner {
	t.Helper()
	g, err := New(append([]Option{WithLabeler("null")}, opts...)...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { g.Close() })
	return g
}

func TestOptionsDefaults(t *testing.T) {
	o := defaultOptions()
	if o.labelerKind != "prose" {
		t.Errorf("default labeler kind = %q, want prose", o.labelerKind)
	}
	if o.patternPath != "" {
		t.Errorf("default pattern path = %q, want empty", o.patternPath)
	}
}

func TestNewUnknownKindReturnsError(t *testing.T) {
	_, err := New(WithLabeler("bogus"))
	if err == nil {
		t.Fatal("expected error for unknown labeler kind, got nil")
	}
	if !strings.Contains(err.Error(), "unknown labeler kind") {
		t.Errorf("error = %q, want mention of unknown labeler kind", err)
	}
}

func TestProcess(t *testing.T) {
	g := newNull(t)

	text := "Dr. Smith announced that shares rose 5 percent. Email press@example.org."
	res := g.Process(context.Background(), text)

	if len(res.Entities) != 1 {
		t.Fatalf("got %d entities, want 1: %+v", len(res.Entities), res.Entities)
	}
	e := res.Entities[0]
	if e.Type != "CONTACT" || e.Text != "press@example.org" {
		t.Errorf("entity = %s %q, want CONTACT press@example.org", e.Type, e.Text)
	}
	if text[e.Start:e.End] != e.Text {
		t.Errorf("offsets %d-%d do not reproduce %q", e.Start, e.End, e.Text)
	}

	if len(res.Events) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(res.Events), res.Events)
	}
	if res.Events[0].Type != "ANNOUNCEMENT" {
		t.Errorf("events[0].Type = %q, want ANNOUNCEMENT", res.Events[0].Type)
	}
	if got := res.Events[0].Attributes["announcer"]; got != "Dr. Smith" {
		t.Errorf("announcer = %q, want Dr. Smith", got)
	}
	if res.Events[1].Type != "ECONOMIC_CHANGE" {
		t.Errorf("events[1].Type = %q, want ECONOMIC_CHANGE", res.Events[1].Type)
	}

	if res.Statistics.TotalEntities != 1 || res.Statistics.TotalEvents != 2 {
		t.Errorf("statistics = %d/%d, want 1/2",
			res.Statistics.TotalEntities, res.Statistics.TotalEvents)
	}
	if res.Statistics.EntityCounts["CONTACT"] != 1 {
		t.Errorf("EntityCounts = %v, want CONTACT:1", res.Statistics.EntityCounts)
	}

	if !strings.Contains(res.HighlightedText, "press@example.org</span>") {
		t.Errorf("highlighted text missing entity span: %q", res.HighlightedText)
	}
}

func TestProcessFiltered(t *testing.T) {
	g := newNull(t)

	text := "Dr. Smith announced that shares rose 5 percent. Email press@example.org."
	res := g.ProcessFiltered(context.Background(), text, []string{"PERSON"}, false)

	if len(res.Entities) != 0 {
		t.Errorf("got %d entities after filtering to PERSON, want 0", len(res.Entities))
	}
	if len(res.Events) != 0 {
		t.Errorf("got %d events with events disabled, want 0", len(res.Events))
	}
	if res.Entities == nil || res.Events == nil {
		t.Error("result lists must be non-nil")
	}
}

func TestEntityTypes(t *testing.T) {
	g := newNull(t)

	names := g.EntityTypes()
	if len(names) != 7 {
		t.Fatalf("got %d entity types, want 7: %v", len(names), names)
	}
	if names[0] != "PERSON" {
		t.Errorf("names[0] = %q, want PERSON", names[0])
	}
	found := false
	for _, n := range names {
		if n == "CONTACT" {
			found = true
		}
	}
	if !found {
		t.Errorf("CONTACT missing from %v", names)
	}
}

func TestWithPatternFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	rules := `- type: PRODUCT_LAUNCH
  pattern: '(\w+) launched (\w+)'
  attributes:
    company: 1
    product: 2
`
	if err := os.WriteFile(path, []byte(rules), 0o644); err != nil {
		t.Fatal(err)
	}

	g := newNull(t, WithPatternFile(path))
	res := g.Process(context.Background(), "Acme launched Orion.")

	if len(res.Events) != 1 {
		t.Fatalf("got %d events, want 1: %+v", len(res.Events), res.Events)
	}
	ev := res.Events[0]
	if ev.Type != "PRODUCT_LAUNCH" {
		t.Errorf("Type = %q, want PRODUCT_LAUNCH", ev.Type)
	}
	if ev.Attributes["company"] != "Acme" || ev.Attributes["product"] != "Orion" {
		t.Errorf("attributes = %v, want company:Acme product:Orion", ev.Attributes)
	}
}

func TestWithPatternFileMissing(t *testing.T) {
	_, err := New(WithLabeler("null"), WithPatternFile("/nonexistent/rules.yaml"))
	if err == nil {
		t.Fatal("expected error for missing pattern file, got nil")
	}
}

func TestWithPatterns(t *testing.T) {
	g := newNull(t, WithPatterns([]Pattern{
		{Type: "PRODUCT_LAUNCH", Pattern: `(\w+) launched (\w+)`, Attributes: map[string]int{"company": 1, "product": 2}},
		{Type: "BROKEN", Pattern: `([`},
	}))

	res := g.Process(context.Background(), "Acme launched Orion.")

	if len(res.Events) != 1 {
		t.Fatalf("got %d events, want 1 (invalid rule skipped): %+v", len(res.Events), res.Events)
	}
	if res.Events[0].Type != "PRODUCT_LAUNCH" {
		t.Errorf("Type = %q, want PRODUCT_LAUNCH", res.Events[0].Type)
	}
	if got := res.Events[0].Attributes["product"]; got != "Orion" {
		t.Errorf("product = %q, want Orion", got)
	}
}

func TestWithPatternsTakePrecedenceOverFile(t *testing.T) {
	// The unreadable file path must not matter when programmatic rules
	// are supplied.
	g, err := New(
		WithLabeler("null"),
		WithPatternFile("/nonexistent/rules.yaml"),
		WithPatterns([]Pattern{{Type: "PING", Pattern: `ping`}}),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer g.Close()

	res := g.Process(context.Background(), "ping")
	if len(res.Events) != 1 || res.Events[0].Type != "PING" {
		t.Fatalf("got %+v, want one PING event", res.Events)
	}
}

func TestConcurrentProcess(t *testing.T) {
	g := newNull(t)

	const goroutines = 10
	var wg sync.WaitGroup
	errs := make(chan string, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := g.Process(context.Background(), "Reach press@example.org now.")
			if res.Statistics.TotalEntities != 1 {
				errs <- "unexpected entity count"
			}
		}()
	}

	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}

func TestClose(t *testing.T) {
	g, err := New(WithLabeler("null"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := g.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
