package reduce

// newsFields is the declared compact-view schema for news, one line per
// article.
var newsFields = []string{"idx", "title", "source", "date", "snippet"}

// News reduces a raw google_news provider result. The full payload keeps
// links, favicons and thumbnails stripped from the compact view.
func News(raw map[string]interface{}) (string, Payload) {
	articles := getSlice(raw, "organic_results")

	compact := header("news_articles", len(articles), newsFields)
	full := Payload{"articles": []interface{}{}}

	records := make([]interface{}, 0, len(articles))
	for i, item := range articles {
		a, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		idx := i + 1
		title := getString(a, "title", "N/A")
		source := getString(a, "source", "N/A")
		date := getString(a, "date", "N/A")
		snippet := getString(a, "snippet", "N/A")

		compact += row(idx, title, source, date, snippet)

		records = append(records, map[string]interface{}{
			"idx":       idx,
			"position":  getValue(a, "position", nil),
			"title":     title,
			"link":      getString(a, "link", ""),
			"source":    source,
			"date":      date,
			"snippet":   snippet,
			"favicon":   getString(a, "favicon", ""),
			"thumbnail": getString(a, "thumbnail", ""),
			"raw_data":  a,
		})
	}
	full["articles"] = records

	return compact, full
}
