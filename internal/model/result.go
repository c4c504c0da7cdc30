package model

// Statistics summarizes the annotations of one extraction run. The count
// maps are always non-nil and sum to their respective totals.
type Statistics struct {
	TotalEntities int            `json:"total_entities"`
	TotalEvents   int            `json:"total_events"`
	EntityCounts  map[string]int `json:"entity_counts"`
	EventCounts   map[string]int `json:"event_counts"`
}

// Metadata describes one processing run. Cached results keep the
// metadata of the run that produced them.
type Metadata struct {
	ProcessingTime float64  `json:"processing_time"` // seconds, rounded to 3 decimals
	Timestamp      string   `json:"timestamp"`       // RFC 3339
	TextLength     int      `json:"text_length"`
	SelectedTypes  []string `json:"selected_types"`
}

// Result is the full output of one extraction run.
type Result struct {
	Entities        []Annotation `json:"entities"`
	Events          []Event      `json:"events"`
	Statistics      Statistics   `json:"statistics"`
	HighlightedText string       `json:"highlighted_text"`
	Metadata        *Metadata    `json:"metadata,omitempty"`
}
