// internal/scrape/client.go
package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"answer-engine/internal/common/config"
)

// PageContent is the useful part of a content-fetch response. Either field
// may be empty when the service could not extract that format.
type PageContent struct {
	Markdown string `json:"markdown"`
	Content  string `json:"content"`
}

// Client calls the content-fetch service for full page content.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(cfg config.ScrapeConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: config.GetDuration(cfg.Timeout),
		},
	}
}

type fetchRequest struct {
	URL             string   `json:"url"`
	Formats         []string `json:"formats"`
	OnlyMainContent bool     `json:"onlyMainContent"`
}

type fetchResponse struct {
	Success bool        `json:"success"`
	Data    PageContent `json:"data"`
	Error   string      `json:"error,omitempty"`
}

// Fetch retrieves markdown/plain content for one URL.
func (c *Client) Fetch(ctx context.Context, pageURL string) (*PageContent, error) {
	body, err := json.Marshal(fetchRequest{
		URL:             pageURL,
		Formats:         []string{"markdown"},
		OnlyMainContent: true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal fetch request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/scrape", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build fetch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch API returned %d", resp.StatusCode)
	}

	var decoded fetchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode fetch response: %w", err)
	}

	if !decoded.Success && decoded.Error != "" {
		return nil, fmt.Errorf("fetch failed: %s", decoded.Error)
	}

	return &decoded.Data, nil
}
