// internal/search/fields.go
package search

import "encoding/json"

// Provider variants name the same logical field differently. Resolution
// walks the candidate list in order; the first present, non-empty value
// wins. Keeping these tables data-driven makes new variants additive.

var resultListKeys = map[string][]string{
	CategoryGeneral: {"results", "organic_results", "web", "items"},
	CategoryNews:    {"news", "news_results", "results"},
	CategoryImages:  {"images", "image_results", "results"},
}

var sourceFieldKeys = map[string][]string{
	"url":           {"url", "link", "href"},
	"title":         {"title", "name"},
	"description":   {"description", "snippet", "summary"},
	"content":       {"content", "text"},
	"publishedDate": {"publishedDate", "published_date", "date"},
	"author":        {"author", "by"},
	"image":         {"image", "img_src", "thumbnail"},
}

var newsFieldKeys = map[string][]string{
	"url":           {"url", "link", "href"},
	"title":         {"title", "name"},
	"description":   {"description", "snippet", "summary"},
	"publishedDate": {"publishedDate", "published_date", "date", "age"},
	"source":        {"source", "publisher", "site"},
	"image":         {"image", "img_src", "thumbnail"},
}

var imageFieldKeys = map[string][]string{
	"url":       {"url", "link", "img_src"},
	"title":     {"title", "alt", "name"},
	"thumbnail": {"thumbnail", "thumbnail_src", "img_src"},
	"source":    {"source", "domain", "site"},
}

var imageIntFieldKeys = map[string][]string{
	"width":    {"width", "img_width"},
	"height":   {"height", "img_height"},
	"position": {"position", "rank"},
}

// stringField resolves a logical field to its first present, non-empty
// string value.
func stringField(raw map[string]interface{}, candidates []string) string {
	for _, key := range candidates {
		if v, ok := raw[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// intField resolves a logical field to its first present numeric value.
// JSON decoding yields float64 for numbers; providers occasionally send
// numeric strings, which are ignored.
func intField(raw map[string]interface{}, candidates []string) int {
	for _, key := range candidates {
		switch v := raw[key].(type) {
		case float64:
			return int(v)
		case int:
			return v
		case json.Number:
			if n, err := v.Int64(); err == nil {
				return int(n)
			}
		}
	}
	return 0
}

// resultList extracts the raw result records for a category from a provider
// payload, trying each known collection key in order.
func resultList(payload map[string]interface{}, category string) []map[string]interface{} {
	for _, key := range resultListKeys[category] {
		list, ok := payload[key].([]interface{})
		if !ok {
			continue
		}
		out := make([]map[string]interface{}, 0, len(list))
		for _, item := range list {
			if m, ok := item.(map[string]interface{}); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}
