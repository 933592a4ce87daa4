package catalog

// Option is one selectable value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Metadata holds the option lists served by the metadata endpoint.
type Metadata struct {
	Airports      []Option `json:"airports"`
	Categories    []Option `json:"categories"`
	Currencies    []Option `json:"currencies"`
	PickupChoices []Option `json:"pickupChoices"`
	Regions       []Option `json:"regions"`
	Countries     []Option `json:"countries"`
}

// StaticMetadata returns the fixed fallback option sets used when the
// metadata endpoint is unavailable. Falling back is a functional
// requirement: the filter panels must stay usable without the endpoint.
func StaticMetadata() Metadata {
	return Metadata{
		Airports: []Option{
			{Value: "dxb", Label: "Dubai International (DXB)"},
			{Value: "jfk", Label: "John F. Kennedy (JFK)"},
			{Value: "lhr", Label: "London Heathrow (LHR)"},
			{Value: "cdg", Label: "Charles de Gaulle (CDG)"},
			{Value: "nrt", Label: "Tokyo Narita (NRT)"},
		},
		Categories: []Option{
			{Value: "electronics", Label: "Electronics"},
			{Value: "fashion", Label: "Fashion & Clothing"},
			{Value: "cosmetics", Label: "Beauty & Cosmetics"},
			{Value: "food", Label: "Food & Beverages"},
			{Value: "books", Label: "Books & Media"},
			{Value: "sports", Label: "Sports & Outdoors"},
		},
		Currencies: []Option{
			{Value: "USD", Label: "US Dollar ($)"},
			{Value: "EUR", Label: "Euro (€)"},
			{Value: "GBP", Label: "British Pound (£)"},
			{Value: "AED", Label: "UAE Dirham (AED)"},
		},
		PickupChoices: []Option{
			{Value: "airport", Label: "Airport pickup"},
			{Value: "hotel", Label: "Hotel delivery"},
			{Value: "city", Label: "City meetup"},
			{Value: "delivery", Label: "Delivery"},
		},
		Regions: []Option{
			{Value: "north-america", Label: "North America"},
			{Value: "europe", Label: "Europe"},
			{Value: "middle-east", Label: "Middle East"},
			{Value: "asia", Label: "Asia"},
			{Value: "africa", Label: "Africa"},
		},
		Countries: []Option{
			{Value: "us", Label: "United States"},
			{Value: "gb", Label: "United Kingdom"},
			{Value: "ae", Label: "United Arab Emirates"},
			{Value: "fr", Label: "France"},
			{Value: "de", Label: "Germany"},
		},
	}
}

// WithFallbacks fills every empty list in m from the static sets. Lists
// the endpoint did populate are kept as served.
func (m Metadata) WithFallbacks() Metadata {
	static := StaticMetadata()
	if len(m.Airports) == 0 {
		m.Airports = static.Airports
	}
	if len(m.Categories) == 0 {
		m.Categories = static.Categories
	}
	if len(m.Currencies) == 0 {
		m.Currencies = static.Currencies
	}
	if len(m.PickupChoices) == 0 {
		m.PickupChoices = static.PickupChoices
	}
	if len(m.Regions) == 0 {
		m.Regions = static.Regions
	}
	if len(m.Countries) == 0 {
		m.Countries = static.Countries
	}
	return m
}
