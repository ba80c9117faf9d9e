package reduce

// flightFields is the declared compact-view schema for flights. One line is
// emitted per flight segment; segments of one option share the option's
// idx, price, duration and stops.
var flightFields = []string{"idx", "price", "duration", "stops", "departure", "arrival", "airline", "flight_num"}

// Flights reduces a raw google_flights provider result. Options are read
// from other_flights, falling back to best_flights. stops = segments - 1.
func Flights(raw map[string]interface{}) (string, Payload) {
	options := getSlice(raw, "other_flights")
	if len(options) == 0 {
		options = getSlice(raw, "best_flights")
	}

	compact := header("flights", len(options), flightFields)
	full := Payload{
		"flights":           []interface{}{},
		"search_metadata":   getMap(raw, "search_metadata"),
		"search_parameters": getMap(raw, "search_parameters"),
		"price_insights":    getMap(raw, "price_insights"),
		"airports":          getValue(raw, "airports", []interface{}{}),
	}

	records := make([]interface{}, 0, len(options))
	for i, opt := range options {
		flight, ok := opt.(map[string]interface{})
		if !ok {
			continue
		}
		idx := i + 1
		price := getValue(flight, "price", "N/A")
		duration := getValue(flight, "total_duration", "N/A")
		segments := getSlice(flight, "flights")
		stops := len(segments) - 1

		records = append(records, map[string]interface{}{
			"idx":              idx,
			"price":            price,
			"duration":         duration,
			"stops":            stops,
			"segments":         segments,
			"carbon_emissions": getMap(flight, "carbon_emissions"),
			"booking_token":    getString(flight, "booking_token", ""),
			"raw_data":         flight,
		})

		for _, s := range segments {
			seg, ok := s.(map[string]interface{})
			if !ok {
				continue
			}
			dep := getString(getMap(seg, "departure_airport"), "id", "N/A")
			arr := getString(getMap(seg, "arrival_airport"), "id", "N/A")
			airline := getString(seg, "airline", "Unknown")
			flightNum := getString(seg, "flight_number", "N/A")
			compact += row(idx, price, duration, stops, dep, arr, airline, flightNum)
		}
	}
	full["flights"] = records

	return compact, full
}
