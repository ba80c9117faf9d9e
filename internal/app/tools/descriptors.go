package tools

// Descriptors returns the fixed tool set exposed to the reasoning provider:
// name, natural-language description and a JSON schema for the arguments.
func (d *Dispatcher) Descriptors() []Descriptor {
	return []Descriptor{
		{
			Name: ToolGetCurrentDate,
			Description: "Get the current date and time information. Use this when users mention " +
				"dates or need date calculations: month names without a year, relative dates " +
				"(tomorrow, next week, 18th), or any ambiguous date reference. Always assume " +
				"future dates; if a month has already passed this year, use next year.",
			Parameters: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name: ToolSearchFlights,
			Description: "Search for flights between two cities on a specific date. Use CITY NAMES " +
				"only (not airport codes). Dates must be in YYYY-MM-DD format.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"departure": map[string]interface{}{
						"type":        "string",
						"description": "Departure CITY name (e.g., \"Mumbai\", \"New York\")",
					},
					"arrival": map[string]interface{}{
						"type":        "string",
						"description": "Arrival CITY name (e.g., \"Delhi\", \"Paris\")",
					},
					"outbound_date": map[string]interface{}{
						"type":        "string",
						"description": "Departure date in YYYY-MM-DD format",
					},
					"is_round_trip": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether this is a round trip booking",
					},
					"return_date": map[string]interface{}{
						"type":        "string",
						"description": "Return date in YYYY-MM-DD format (required if is_round_trip)",
					},
				},
				"required": []string{"departure", "arrival", "outbound_date"},
			},
		},
		{
			Name: ToolSearchHotels,
			Description: "Search for hotels in a specific location for given dates. Location can " +
				"include descriptors like \"beachside hotels in Bali\" or just a city name. " +
				"Dates must be in YYYY-MM-DD format.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"check_in_date": map[string]interface{}{
						"type":        "string",
						"description": "Check-in date in YYYY-MM-DD format",
					},
					"check_out_date": map[string]interface{}{
						"type":        "string",
						"description": "Check-out date in YYYY-MM-DD format",
					},
					"location": map[string]interface{}{
						"type":        "string",
						"description": "Hotel location/city with optional description",
					},
				},
				"required": []string{"check_in_date", "check_out_date", "location"},
			},
		},
		{
			Name: ToolSearchNews,
			Description: "Search for recent news articles related to travel, destinations, or " +
				"topics (e.g., \"travel restrictions Italy\", \"best time to visit Japan\").",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "News search query",
					},
				},
				"required": []string{"query"},
			},
		},
	}
}
