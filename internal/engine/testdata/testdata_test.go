package testdata

import "testing"

func TestLoadCorpus(t *testing.T) {
	entries, err := LoadCorpus()
	if err != nil {
		t.Fatalf("LoadCorpus() error: %v", err)
	}

	if len(entries) == 0 {
		t.Fatal("corpus is empty")
	}
	t.Logf("Total entries: %d", len(entries))

	for i, e := range entries {
		if e.Text == "" {
			t.Errorf("entry[%d] has empty text", i)
		}
		if e.Description == "" {
			t.Errorf("entry[%d] has empty description", i)
		}
	}
}

func TestCorpusEventCoverage(t *testing.T) {
	entries, err := LoadCorpus()
	if err != nil {
		t.Fatalf("LoadCorpus() error: %v", err)
	}

	// Every built-in event type must be expected by at least one entry.
	want := []string{
		"ANNOUNCEMENT", "MEETING", "LEGAL_ACTION",
		"ECONOMIC_CHANGE", "INCIDENT", "TEMPORAL_EVENT",
	}
	covered := map[string]int{}
	for _, e := range entries {
		for _, ev := range e.ExpectedEvents {
			covered[ev]++
		}
	}
	for _, typ := range want {
		if covered[typ] == 0 {
			t.Errorf("event type %q has no corpus entries", typ)
		}
	}
	t.Logf("Coverage: %d event types across %d entries", len(covered), len(entries))
}
