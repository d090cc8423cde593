// internal/search/models.go
package search

// Search categories issued by the fan-out coordinator.
const (
	CategoryGeneral = "general"
	CategoryNews    = "news"
	CategoryImages  = "images"
)

// Source is a normalized web search result. URL is the unique key.
// Markdown and Content start empty and are filled by enrichment; absence is
// valid and the context builder falls back to Description.
type Source struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Content       string `json:"content,omitempty"`
	Markdown      string `json:"markdown,omitempty"`
	PublishedDate string `json:"publishedDate,omitempty"`
	Author        string `json:"author,omitempty"`
	Image         string `json:"image,omitempty"`
	Favicon       string `json:"favicon,omitempty"`
	SiteName      string `json:"siteName,omitempty"`
}

// NewsItem is a normalized news search result.
type NewsItem struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	PublishedDate string `json:"publishedDate,omitempty"`
	Source        string `json:"source,omitempty"`
	Image         string `json:"image,omitempty"`
}

// ImageItem is a normalized image search result.
type ImageItem struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Source    string `json:"source,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Position  int    `json:"position,omitempty"`
}

// Bundle holds the three normalized collections for one query. The sources
// list order is stable and defines the citation order: sources[0] is [1].
type Bundle struct {
	Sources []Source    `json:"sources"`
	News    []NewsItem  `json:"news"`
	Images  []ImageItem `json:"images"`
}
