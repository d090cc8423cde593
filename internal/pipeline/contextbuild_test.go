// internal/pipeline/contextbuild_test.go
package pipeline

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"answer-engine/internal/search"
)

func TestBuildContext_IndexMatchesCitationOrder(t *testing.T) {
	sources := []search.Source{
		{URL: "https://a.example.com", Title: "First", Description: "alpha text"},
		{URL: "https://b.example.com", Title: "Second", Description: "beta text"},
		{URL: "https://c.example.com", Title: "Third", Description: "gamma text"},
	}

	blocks := BuildContext(sources, "text", 1000)

	require.Len(t, blocks, 3)
	for i, block := range blocks {
		assert.Equal(t, i+1, block.Index)
		assert.Equal(t, sources[i].URL, block.URL)
		assert.Equal(t, sources[i].Title, block.Title)
	}
}

func TestBuildContext_BodyFallbackChain(t *testing.T) {
	tests := []struct {
		name string
		src  search.Source
		want string
	}{
		{
			name: "markdown preferred",
			src:  search.Source{URL: "https://x", Markdown: "md body", Content: "plain body", Description: "snippet"},
			want: "md body",
		},
		{
			name: "content when no markdown",
			src:  search.Source{URL: "https://x", Content: "plain body", Description: "snippet"},
			want: "plain body",
		},
		{
			name: "description as last resort",
			src:  search.Source{URL: "https://x", Description: "snippet"},
			want: "snippet",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := BuildContext([]search.Source{tt.src}, "query", 1000)
			require.Len(t, blocks, 1)
			assert.Equal(t, tt.want, blocks[0].Excerpt)
		})
	}
}

func TestBuildContext_AppliesBudgetPerSource(t *testing.T) {
	long := strings.Repeat("solar panel efficiency improves. ", 50)
	sources := []search.Source{
		{URL: "https://a", Title: "A", Markdown: long},
		{URL: "https://b", Title: "B", Markdown: long},
	}

	blocks := BuildContext(sources, "solar efficiency", 200)

	require.Len(t, blocks, 2)
	for _, block := range blocks {
		assert.LessOrEqual(t, len(block.Excerpt), 200)
		assert.NotEmpty(t, block.Excerpt)
	}
}

func TestRenderContext_NumberedBlocks(t *testing.T) {
	blocks := []ContextBlock{
		{Index: 1, Title: "First", URL: "https://a.example.com", Excerpt: "alpha"},
		{Index: 2, Title: "Second", URL: "https://b.example.com", Excerpt: "beta"},
	}

	text := RenderContext(blocks)

	assert.Contains(t, text, "[1] First\nURL: https://a.example.com\nalpha")
	assert.Contains(t, text, "[2] Second\nURL: https://b.example.com\nbeta")
	assert.True(t, strings.Index(text, "[1]") < strings.Index(text, "[2]"))
	assert.False(t, strings.HasSuffix(text, "\n"))
}

func TestRenderContext_Empty(t *testing.T) {
	assert.Empty(t, RenderContext(nil))
}

func TestBuildContext_ManySourcesKeepStableNumbering(t *testing.T) {
	sources := make([]search.Source, 8)
	for i := range sources {
		sources[i] = search.Source{
			URL:         fmt.Sprintf("https://example.com/%d", i),
			Title:       fmt.Sprintf("T%d", i),
			Description: "body",
		}
	}

	text := RenderContext(BuildContext(sources, "body", 500))

	for i := 1; i <= 8; i++ {
		assert.Contains(t, text, fmt.Sprintf("[%d] T%d", i, i-1))
	}
}
