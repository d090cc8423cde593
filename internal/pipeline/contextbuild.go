// internal/pipeline/contextbuild.go
package pipeline

import (
	"fmt"
	"strings"

	"answer-engine/internal/relevance"
	"answer-engine/internal/search"
)

// ContextBlock is one numbered, cited grounding block for generation.
// Index matches the source's citation marker: sources[i] is block i+1.
type ContextBlock struct {
	Index   int
	Title   string
	URL     string
	Excerpt string
}

// BuildContext produces one block per source in citation order. The excerpt
// is the relevance selection over the best-available content field:
// markdown, then content, then the search description.
func BuildContext(sources []search.Source, query string, budget int) []ContextBlock {
	blocks := make([]ContextBlock, 0, len(sources))

	for i, src := range sources {
		body := src.Markdown
		if body == "" {
			body = src.Content
		}
		if body == "" {
			body = src.Description
		}

		blocks = append(blocks, ContextBlock{
			Index:   i + 1,
			Title:   src.Title,
			URL:     src.URL,
			Excerpt: relevance.Select(body, query, budget),
		})
	}

	return blocks
}

// RenderContext concatenates blocks into the grounding text handed to the
// generation stage. Concatenation order defines the citation numbering.
func RenderContext(blocks []ContextBlock) string {
	var b strings.Builder
	for _, block := range blocks {
		fmt.Fprintf(&b, "[%d] %s\nURL: %s\n%s\n\n", block.Index, block.Title, block.URL, block.Excerpt)
	}
	return strings.TrimRight(b.String(), "\n")
}
