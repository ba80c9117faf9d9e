package reduce

import (
	"fmt"
	"strings"
)

// hotelFields is the declared compact-view schema for hotels, one line per
// property.
var hotelFields = []string{
	"idx", "name", "city", "country", "price_per_night", "total_price",
	"rating", "reviews", "location_rating", "amenities_summary",
}

// Hotels reduces a raw google_hotels provider result. Prices in the compact
// view are the extracted pre-tax amounts; the full payload keeps the complete
// price objects, images, GPS coordinates and offers.
func Hotels(raw map[string]interface{}) (string, Payload) {
	properties := getSlice(raw, "properties")

	compact := header("properties", len(properties), hotelFields)
	full := Payload{"properties": []interface{}{}}

	records := make([]interface{}, 0, len(properties))
	for i, item := range properties {
		p, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		idx := i + 1
		amenities := asStrings(getSlice(p, "amenities"))
		perNight := getValue(getMap(p, "price_per_night"), "extracted_price_before_taxes", "N/A")
		total := getValue(getMap(p, "total_price"), "extracted_price_before_taxes", "N/A")

		compact += row(
			idx,
			getString(p, "name", "N/A"),
			getString(p, "city", "N/A"),
			getString(p, "country", "N/A"),
			perNight,
			total,
			getValue(p, "rating", 0.0),
			getValue(p, "reviews", 0),
			getValue(p, "location_rating", 0.0),
			AmenitiesSummary(amenities),
		)

		records = append(records, map[string]interface{}{
			"idx":                         idx,
			"type":                        getString(p, "type", ""),
			"name":                        getString(p, "name", ""),
			"gps_coordinates":             getMap(p, "gps_coordinates"),
			"city":                        getString(p, "city", ""),
			"country":                     getString(p, "country", ""),
			"check_in_time":               getString(p, "check_in_time", ""),
			"check_out_time":              getString(p, "check_out_time", ""),
			"price_per_night":             getMap(p, "price_per_night"),
			"total_price":                 getMap(p, "total_price"),
			"offers":                      getValue(p, "offers", []interface{}{}),
			"rating":                      getValue(p, "rating", 0.0),
			"reviews":                     getValue(p, "reviews", 0),
			"location_rating":             getValue(p, "location_rating", 0.0),
			"proximity_to_transit_rating": getValue(p, "proximity_to_transit_rating", 0.0),
			"airport_access_rating":       getValue(p, "airport_access_rating", 0.0),
			"amenities":                   amenities,
			"essential_info":              getValue(p, "essential_info", []interface{}{}),
			"images":                      getValue(p, "images", []interface{}{}),
			"raw_data":                    p,
		})
	}
	full["properties"] = records

	return compact, full
}

// AmenitiesSummary condenses an amenity list for the compact view:
// none -> "None"; up to three items verbatim; otherwise the first two
// followed by a "+N more" count of the remainder.
func AmenitiesSummary(amenities []string) string {
	switch {
	case len(amenities) == 0:
		return "None"
	case len(amenities) <= 3:
		return strings.Join(amenities, ", ")
	default:
		return fmt.Sprintf("%s, +%d more", strings.Join(amenities[:2], ", "), len(amenities)-2)
	}
}
