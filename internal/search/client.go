// internal/search/client.go
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"answer-engine/internal/cache"
	"answer-engine/internal/common/config"
	"answer-engine/internal/common/logger"
	"answer-engine/internal/common/metrics"
)

// StatusError reports a non-2xx response from the search service, carrying
// the upstream status code for the error event.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("search API returned %d: %s", e.StatusCode, e.Body)
}

// Client calls the category search service. Responses are provider-shaped
// JSON; normalization happens in the coordinator.
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	safeSearch int
	client     *http.Client
	cache      *cache.SearchCache
	logger     logger.Logger
}

func NewClient(cfg config.SearchConfig, searchCache *cache.SearchCache, log logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		safeSearch: cfg.SafeSearch,
		client: &http.Client{
			Timeout: config.GetDuration(cfg.Timeout),
		},
		cache:  searchCache,
		logger: log.WithFields(map[string]interface{}{"component": "search"}),
	}
}

type searchRequest struct {
	Query      string `json:"query"`
	Category   string `json:"category"`
	Language   string `json:"language,omitempty"`
	SafeSearch int    `json:"safesearch,omitempty"`
}

// Search issues one category search and returns the raw provider payload.
// Cached payloads are served without hitting the backend.
func (c *Client) Search(ctx context.Context, query, category string) (map[string]interface{}, error) {
	if raw, ok := c.cache.Get(ctx, category, query); ok {
		var payload map[string]interface{}
		if err := json.Unmarshal(raw, &payload); err == nil {
			c.logger.Debug("search cache hit", map[string]interface{}{"category": category})
			return payload, nil
		}
	}

	body, err := json.Marshal(searchRequest{
		Query:      query,
		Category:   category,
		Language:   c.language,
		SafeSearch: c.safeSearch,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.SearchRequests.WithLabelValues(category, "error").Inc()
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.SearchRequests.WithLabelValues(category, "error").Inc()
		return nil, fmt.Errorf("read search response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.SearchRequests.WithLabelValues(category, "error").Inc()
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(raw), 200)}
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		metrics.SearchRequests.WithLabelValues(category, "error").Inc()
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	metrics.SearchRequests.WithLabelValues(category, "success").Inc()
	c.cache.Set(ctx, category, query, raw)

	return payload, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
