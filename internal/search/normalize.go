// internal/search/normalize.go
package search

import (
	"net/url"
	"strings"
)

// NormalizeWeb converts a general-category provider payload into Sources.
// Malformed records are silently excluded; a record without a resolvable
// URL is dropped.
func NormalizeWeb(payload map[string]interface{}) []Source {
	raw := resultList(payload, CategoryGeneral)
	sources := make([]Source, 0, len(raw))

	for _, item := range raw {
		link := stringField(item, sourceFieldKeys["url"])
		if link == "" {
			continue
		}

		src := Source{
			URL:           link,
			Title:         stringField(item, sourceFieldKeys["title"]),
			Description:   stringField(item, sourceFieldKeys["description"]),
			Content:       stringField(item, sourceFieldKeys["content"]),
			PublishedDate: stringField(item, sourceFieldKeys["publishedDate"]),
			Author:        stringField(item, sourceFieldKeys["author"]),
			Image:         stringField(item, sourceFieldKeys["image"]),
		}

		if host := hostOf(link); host != "" {
			src.SiteName = strings.TrimPrefix(host, "www.")
			src.Favicon = faviconURL(host)
		}

		sources = append(sources, src)
	}

	return sources
}

// NormalizeNews converts a news-category provider payload into NewsItems.
func NormalizeNews(payload map[string]interface{}) []NewsItem {
	raw := resultList(payload, CategoryNews)
	items := make([]NewsItem, 0, len(raw))

	for _, item := range raw {
		link := stringField(item, newsFieldKeys["url"])
		if link == "" {
			continue
		}

		news := NewsItem{
			URL:           link,
			Title:         stringField(item, newsFieldKeys["title"]),
			Description:   stringField(item, newsFieldKeys["description"]),
			PublishedDate: stringField(item, newsFieldKeys["publishedDate"]),
			Source:        stringField(item, newsFieldKeys["source"]),
			Image:         stringField(item, newsFieldKeys["image"]),
		}

		if news.Source == "" {
			if host := hostOf(link); host != "" {
				news.Source = strings.TrimPrefix(host, "www.")
			}
		}

		items = append(items, news)
	}

	return items
}

// NormalizeImages converts an images-category provider payload into
// ImageItems.
func NormalizeImages(payload map[string]interface{}) []ImageItem {
	raw := resultList(payload, CategoryImages)
	items := make([]ImageItem, 0, len(raw))

	for _, item := range raw {
		link := stringField(item, imageFieldKeys["url"])
		if link == "" {
			continue
		}

		items = append(items, ImageItem{
			URL:       link,
			Title:     stringField(item, imageFieldKeys["title"]),
			Thumbnail: stringField(item, imageFieldKeys["thumbnail"]),
			Source:    stringField(item, imageFieldKeys["source"]),
			Width:     intField(item, imageIntFieldKeys["width"]),
			Height:    intField(item, imageIntFieldKeys["height"]),
			Position:  intField(item, imageIntFieldKeys["position"]),
		})
	}

	return items
}

// hostOf returns the host of a result URL, or "" when the URL does not
// parse. Parse failure is not an error; host-derived fields stay empty.
func hostOf(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}

func faviconURL(host string) string {
	return "https://www.google.com/s2/favicons?sz=64&domain=" + host
}
