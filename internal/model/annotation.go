package model

import "strings"

// Annotation is a labeled span of the input text. Start and End are byte
// offsets into the original text, so text[Start:End] reproduces Text.
type Annotation struct {
	Text       string  `json:"text"`
	Type       string  `json:"type"`       // canonical type (PERSON, ORGANIZATION, ...)
	Start      int     `json:"start"`      // byte offset, inclusive
	End        int     `json:"end"`        // byte offset, exclusive
	Confidence float64 `json:"confidence"` // [0,1], source-dependent
	Context    string  `json:"context"`    // surrounding text window
}

// Event is an annotation produced by an event rule, carrying the named
// capture groups that participated in the match. Groups that did not
// participate are absent from Attributes.
type Event struct {
	Annotation
	Attributes map[string]string `json:"attributes"`
}

// contextRadius is the number of bytes kept on each side of a span when
// building its context window.
const contextRadius = 50

// ContextWindow returns the slice of text surrounding [start,end), clipped
// to the text bounds and trimmed of edge whitespace.
func ContextWindow(text string, start, end int) string {
	lo := start - contextRadius
	if lo < 0 {
		lo = 0
	}
	hi := end + contextRadius
	if hi > len(text) {
		hi = len(text)
	}
	return strings.TrimSpace(text[lo:hi])
}
