package entity

// labelMap translates source label vocabularies into canonical types: the
// spaCy-style labels emitted by prose and genai sources, plus the CoNLL
// forms emitted by token classification models.
var labelMap = map[string]string{
	"PERSON": "PERSON",
	"PER":    "PERSON",
	"ORG":    "ORGANIZATION",
	"GPE":    "LOCATION", // geopolitical entity
	"LOC":    "LOCATION",
	"DATE":   "DATE",
	"TIME":   "DATE",
	"MONEY":  "MONEY",
	"EVENT":  "EVENT",
}

// MapLabel translates a source label into the canonical vocabulary.
// Unknown labels pass through unchanged.
func MapLabel(label string) string {
	if mapped, ok := labelMap[label]; ok {
		return mapped
	}
	return label
}
