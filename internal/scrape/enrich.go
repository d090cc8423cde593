// internal/scrape/enrich.go
package scrape

import (
	"context"
	"sync"

	"answer-engine/internal/common/logger"
	"answer-engine/internal/common/metrics"
	"answer-engine/internal/search"
)

// Fetcher is the part of the content-fetch client the enricher needs.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*PageContent, error)
}

// Enricher fetches full content for a bounded prefix of the normalized web
// sources. Fetches are independent: one item failing never fails another,
// and a failed item simply keeps its unenriched fields.
type Enricher struct {
	fetcher Fetcher
	limit   int
	logger  logger.Logger
}

// NewEnricher creates an enricher covering the first limit sources in
// citation order. The limit is coerced to at least 1.
func NewEnricher(fetcher Fetcher, limit int, log logger.Logger) *Enricher {
	if limit < 1 {
		limit = 1
	}
	return &Enricher{
		fetcher: fetcher,
		limit:   limit,
		logger:  log.WithFields(map[string]interface{}{"component": "enricher"}),
	}
}

// Enrich augments the first N sources in place and returns when every fetch
// has settled. Membership, order and URLs never change; fetched values
// overwrite Markdown/Content only when non-empty.
func (e *Enricher) Enrich(ctx context.Context, sources []search.Source) {
	n := e.limit
	if n > len(sources) {
		n = len(sources)
	}
	if n == 0 {
		return
	}

	results := make([]*PageContent, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			page, err := e.fetcher.Fetch(ctx, sources[idx].URL)
			if err != nil {
				metrics.EnrichmentFetches.WithLabelValues("error").Inc()
				e.logger.Warn("content fetch failed, keeping search snippet", map[string]interface{}{
					"url":   sources[idx].URL,
					"error": err.Error(),
				})
				return
			}
			metrics.EnrichmentFetches.WithLabelValues("success").Inc()
			results[idx] = page
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		page := results[i]
		if page == nil {
			continue
		}
		if page.Markdown != "" {
			sources[i].Markdown = page.Markdown
		}
		if page.Content != "" {
			sources[i].Content = page.Content
		}
	}
}

// Limit returns the configured enrichment bound.
func (e *Enricher) Limit() int {
	return e.limit
}
