package testdata

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed corpus.json
var corpusJSON []byte

// CorpusEntry is a labeled news snippet for extraction validation. The
// expected lists name types that must be present in the output; extra
// findings are allowed.
type CorpusEntry struct {
	Text           string   `json:"text"`
	ExpectedTypes  []string `json:"expected_types"`
	ExpectedEvents []string `json:"expected_events"`
	Description    string   `json:"description"`
}

// LoadCorpus parses the embedded corpus.json and returns all entries.
func LoadCorpus() ([]CorpusEntry, error) {
	var entries []CorpusEntry
	if err := json.Unmarshal(corpusJSON, &entries); err != nil {
		return nil, fmt.Errorf("parse corpus.json: %w", err)
	}
	return entries, nil
}
