package registry

// DefaultTypes returns the built-in news entity types.
func DefaultTypes() []Type {
	return []Type{
		{Name: "PERSON", Color: "#FF6B6B", Desc: "People mentioned in news"},
		{Name: "ORGANIZATION", Color: "#4ECDC4", Desc: "Companies, institutions, government bodies"},
		{Name: "LOCATION", Color: "#45B7D1", Desc: "Countries, cities, specific places"},
		{Name: "DATE", Color: "#96CEB4", Desc: "Dates and time references"},
		{Name: "MONEY", Color: "#FFEAA7", Desc: "Monetary values and currencies"},
		{Name: "EVENT", Color: "#DDA0DD", Desc: "Significant events or incidents"},
		{Name: "CONTACT", Color: DefaultColor, Desc: "Email addresses and phone numbers"},
	}
}

// Default returns a Registry loaded with DefaultTypes.
func Default() *Registry {
	return New(DefaultTypes())
}
