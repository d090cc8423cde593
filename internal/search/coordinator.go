// internal/search/coordinator.go
package search

import (
	"context"

	"golang.org/x/sync/errgroup"

	"answer-engine/internal/common/logger"
)

// Coordinator fans out the three category searches for one query. The
// general category is required; news and images are best-effort and recover
// to empty collections on failure.
type Coordinator struct {
	client *Client
	logger logger.Logger
}

func NewCoordinator(client *Client, log logger.Logger) *Coordinator {
	return &Coordinator{
		client: client,
		logger: log.WithFields(map[string]interface{}{"component": "coordinator"}),
	}
}

// Run issues all three searches concurrently and joins on all of them
// before returning, so the first sources emission always reflects every
// category. A general-category failure fails the whole request.
func (co *Coordinator) Run(ctx context.Context, query string) (*Bundle, error) {
	g, gctx := errgroup.WithContext(ctx)

	sources := []Source{}
	news := []NewsItem{}
	images := []ImageItem{}

	g.Go(func() error {
		payload, err := co.client.Search(gctx, query, CategoryGeneral)
		if err != nil {
			return err
		}
		sources = NormalizeWeb(payload)
		return nil
	})

	g.Go(func() error {
		payload, err := co.client.Search(gctx, query, CategoryNews)
		if err != nil {
			co.logger.Warn("news search failed, continuing without news", map[string]interface{}{
				"error": err.Error(),
			})
			return nil
		}
		news = NormalizeNews(payload)
		return nil
	})

	g.Go(func() error {
		payload, err := co.client.Search(gctx, query, CategoryImages)
		if err != nil {
			co.logger.Warn("image search failed, continuing without images", map[string]interface{}{
				"error": err.Error(),
			})
			return nil
		}
		images = NormalizeImages(payload)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Bundle{Sources: sources, News: news, Images: images}, nil
}
