package gleaner

// Entity is one labeled span of input text.
// This is the stable public type; internal representations may evolve
// independently without breaking consumers.
type Entity struct {
	Text       string  `json:"text"`       // Matched span
	Type       string  `json:"type"`       // PERSON, ORGANIZATION, LOCATION, etc.
	Start      int     `json:"start"`      // Byte offset, text[Start:End] == Text
	End        int     `json:"end"`        // Byte offset past the span
	Confidence float64 `json:"confidence"` // 0..1
	Context    string  `json:"context"`    // Surrounding window, ~50 bytes each side
}

// Event is one extracted event with its captured attributes.
type Event struct {
	Text       string            `json:"text"`
	Type       string            `json:"type"` // ANNOUNCEMENT, ECONOMIC_CHANGE, etc.
	Start      int               `json:"start"`
	End        int               `json:"end"`
	Confidence float64           `json:"confidence"`
	Context    string            `json:"context"`
	Attributes map[string]string `json:"attributes"` // Named capture groups
}

// Statistics summarizes one extraction run.
type Statistics struct {
	TotalEntities int            `json:"total_entities"`
	TotalEvents   int            `json:"total_events"`
	EntityCounts  map[string]int `json:"entity_counts"` // Count per entity type
	EventCounts   map[string]int `json:"event_counts"`  // Count per event type
}

// Result is the complete output of one extraction run.
type Result struct {
	Entities        []Entity   `json:"entities"`
	Events          []Event    `json:"events"`
	Statistics      Statistics `json:"statistics"`
	HighlightedText string     `json:"highlighted_text"` // Input with entity spans wrapped in markup
}
