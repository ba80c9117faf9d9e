package reduce

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func segment(dep, arr, airline, num string) map[string]interface{} {
	return map[string]interface{}{
		"departure_airport": map[string]interface{}{"id": dep},
		"arrival_airport":   map[string]interface{}{"id": arr},
		"airline":           airline,
		"flight_number":     num,
	}
}

func TestFlights(t *testing.T) {
	raw := map[string]interface{}{
		"other_flights": []interface{}{
			map[string]interface{}{
				"price":          float64(5400),
				"total_duration": float64(130),
				"flights":        []interface{}{segment("BOM", "DEL", "IndiGo", "6E 195")},
				"booking_token":  "tok-1",
			},
			map[string]interface{}{
				"price":          float64(7200),
				"total_duration": float64(310),
				"flights": []interface{}{
					segment("BOM", "HYD", "Air India", "AI 840"),
					segment("HYD", "DEL", "Air India", "AI 544"),
					segment("DEL", "DEL", "Air India", "AI 001"),
				},
			},
		},
		"price_insights": map[string]interface{}{"lowest_price": float64(5400)},
	}

	compact, full := Flights(raw)

	t.Run("header declares schema", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(compact,
			"flights [2] {idx, price, duration, stops, departure, arrival, airline, flight_num}\n"))
	})

	t.Run("one line per segment sharing option idx", func(t *testing.T) {
		lines := strings.Split(strings.TrimRight(compact, "\n"), "\n")
		require.Len(t, lines, 5) // header + 1 + 3 segments
		assert.Equal(t, "\t\t1,5400,130,0,BOM,DEL,IndiGo,6E 195", lines[1])
		assert.True(t, strings.HasPrefix(lines[2], "\t\t2,7200,310,2,"))
		assert.True(t, strings.HasPrefix(lines[4], "\t\t2,7200,310,2,"))
	})

	t.Run("stops derived from segment count", func(t *testing.T) {
		records := full["flights"].([]interface{})
		require.Len(t, records, 2)
		assert.Equal(t, 0, records[0].(map[string]interface{})["stops"])
		assert.Equal(t, 2, records[1].(map[string]interface{})["stops"])
	})

	t.Run("full payload keeps provider extras", func(t *testing.T) {
		first := full["flights"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, "tok-1", first["booking_token"])
		assert.NotNil(t, first["raw_data"])
		assert.Equal(t, float64(5400), full["price_insights"].(map[string]interface{})["lowest_price"])
	})
}

func TestFlights_BestFlightsFallback(t *testing.T) {
	raw := map[string]interface{}{
		"best_flights": []interface{}{
			map[string]interface{}{
				"price":          float64(100),
				"total_duration": float64(60),
				"flights":        []interface{}{segment("JFK", "LHR", "BA", "BA 117")},
			},
		},
	}
	compact, full := Flights(raw)
	assert.Contains(t, compact, "flights [1]")
	assert.Len(t, full["flights"].([]interface{}), 1)
}

func TestFlights_Empty(t *testing.T) {
	compact, full := Flights(map[string]interface{}{})
	assert.True(t, strings.HasPrefix(compact, "flights [0] {idx, price"))
	assert.Empty(t, full["flights"].([]interface{}))
}

func TestHotels(t *testing.T) {
	raw := map[string]interface{}{
		"properties": []interface{}{
			map[string]interface{}{
				"name":    "Seaside Inn",
				"city":    "Denpasar",
				"country": "Indonesia",
				"price_per_night": map[string]interface{}{
					"extracted_price_before_taxes": float64(82),
				},
				"total_price": map[string]interface{}{
					"extracted_price_before_taxes": float64(246),
				},
				"rating":          4.5,
				"reviews":         float64(812),
				"location_rating": 4.1,
				"amenities":       []interface{}{"Pool", "Wi-Fi", "Bar", "Spa", "Gym"},
				"images":          []interface{}{map[string]interface{}{"thumbnail": "img"}},
				"gps_coordinates": map[string]interface{}{"latitude": -8.65, "longitude": 115.21},
			},
		},
	}

	compact, full := Hotels(raw)

	assert.True(t, strings.HasPrefix(compact,
		"properties [1] {idx, name, city, country, price_per_night, total_price, rating, reviews, location_rating, amenities_summary}\n"))
	assert.Contains(t, compact, "\t\t1,Seaside Inn,Denpasar,Indonesia,82,246,4.5,812,4.1,Pool, Wi-Fi, +3 more\n")

	records := full["properties"].([]interface{})
	require.Len(t, records, 1)
	rec := records[0].(map[string]interface{})
	assert.Equal(t, []string{"Pool", "Wi-Fi", "Bar", "Spa", "Gym"}, rec["amenities"])
	assert.NotEmpty(t, rec["images"])
	assert.NotEmpty(t, rec["gps_coordinates"])
}

func TestHotels_Empty(t *testing.T) {
	compact, full := Hotels(map[string]interface{}{})
	assert.True(t, strings.HasPrefix(compact, "properties [0] {idx, name"))
	assert.Empty(t, full["properties"].([]interface{}))
}

func TestAmenitiesSummary(t *testing.T) {
	tests := []struct {
		name      string
		amenities []string
		want      string
	}{
		{"zero items", nil, "None"},
		{"one item", []string{"Pool"}, "Pool"},
		{"exactly three joined with no suffix", []string{"Pool", "Wi-Fi", "Bar"}, "Pool, Wi-Fi, Bar"},
		{"five items truncate to first two", []string{"Pool", "Wi-Fi", "Bar", "Spa", "Gym"}, "Pool, Wi-Fi, +3 more"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AmenitiesSummary(tt.amenities))
		})
	}
}

func TestNews(t *testing.T) {
	raw := map[string]interface{}{
		"organic_results": []interface{}{
			map[string]interface{}{
				"position":  float64(1),
				"title":     "Italy eases entry rules",
				"source":    "Reuters",
				"date":      "2 days ago",
				"snippet":   "Travelers to Italy no longer need...",
				"link":      "https://example.com/italy",
				"thumbnail": "https://example.com/t.jpg",
			},
		},
	}

	compact, full := News(raw)

	assert.True(t, strings.HasPrefix(compact, "news_articles [1] {idx, title, source, date, snippet}\n"))
	assert.Contains(t, compact, "\t\t1,Italy eases entry rules,Reuters,2 days ago,")

	articles := full["articles"].([]interface{})
	require.Len(t, articles, 1)
	art := articles[0].(map[string]interface{})
	assert.Equal(t, "https://example.com/italy", art["link"])
	assert.Equal(t, "https://example.com/t.jpg", art["thumbnail"])
}

func TestNews_Empty(t *testing.T) {
	compact, full := News(map[string]interface{}{})
	assert.True(t, strings.HasPrefix(compact, "news_articles [0]"))
	assert.Empty(t, full["articles"].([]interface{}))
}

func TestDataType_Valid(t *testing.T) {
	assert.True(t, DataFlights.Valid())
	assert.True(t, DataHotels.Valid())
	assert.True(t, DataNews.Valid())
	assert.False(t, DataType("weather").Valid())
}
