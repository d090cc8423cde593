// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
search:
  base_url: "http://localhost:8888"
scrape:
  base_url: "http://localhost:3002"
llm:
  base_url: "https://api.openai.com"
  api_key: "sk-test"
`

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfigFile(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 9090, cfg.Server.MetricsPort)
	assert.Equal(t, "en", cfg.Search.Language)
	assert.Equal(t, 10000, cfg.Search.Timeout)
	assert.Equal(t, 15000, cfg.Scrape.Timeout)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 0.7, cfg.LLM.Temperature)
	assert.Equal(t, 2, cfg.LLM.MaxRetries)
	assert.Equal(t, 5, cfg.Pipeline.EnrichLimit)
	assert.Equal(t, 2000, cfg.Pipeline.ContextBudget)
	assert.Equal(t, 300, cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFile_ExplicitValuesKept(t *testing.T) {
	cfg, err := LoadFromFile(writeConfigFile(t, `
server:
  port: 9000
search:
  base_url: "http://localhost:8888"
  language: "de"
scrape:
  base_url: "http://localhost:3002"
llm:
  base_url: "https://api.openai.com"
  api_key: "sk-test"
  model: "gpt-4o"
pipeline:
  enrich_limit: 3
  context_budget: 4000
`))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "de", cfg.Search.Language)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, 3, cfg.Pipeline.EnrichLimit)
	assert.Equal(t, 4000, cfg.Pipeline.ContextBudget)
}

func TestLoadFromFile_EnrichLimitCoercedToAtLeastOne(t *testing.T) {
	cfg, err := LoadFromFile(writeConfigFile(t, minimalConfig+`
pipeline:
  enrich_limit: -2
`))
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Pipeline.EnrichLimit)
}

func TestLoadFromFile_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing search base url",
			content: `
scrape:
  base_url: "http://localhost:3002"
llm:
  base_url: "https://api.openai.com"
  api_key: "sk-test"
`,
			wantErr: "search.base_url",
		},
		{
			name: "missing llm api key",
			content: `
search:
  base_url: "http://localhost:8888"
scrape:
  base_url: "http://localhost:3002"
llm:
  base_url: "https://api.openai.com"
`,
			wantErr: "llm.api_key",
		},
		{
			name: "cache enabled without redis address",
			content: minimalConfig + `
cache:
  enabled: true
`,
			wantErr: "cache.redis.address",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfigFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_EnvOverrideFillsEmptyCredentials(t *testing.T) {
	t.Setenv("SEARCH_API_KEY", "env-search-key")
	t.Setenv("LLM_API_KEY", "env-llm-key")

	cfg, err := LoadFromFile(writeConfigFile(t, `
search:
  base_url: "http://localhost:8888"
scrape:
  base_url: "http://localhost:3002"
llm:
  base_url: "https://api.openai.com"
`))
	require.NoError(t, err)

	assert.Equal(t, "env-search-key", cfg.Search.APIKey)
	assert.Equal(t, "env-llm-key", cfg.LLM.APIKey)
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_LLM_KEY", "sk-from-env")

	cfg, err := LoadFromFile(writeConfigFile(t, `
search:
  base_url: "http://localhost:8888"
scrape:
  base_url: "http://localhost:3002"
llm:
  base_url: "https://api.openai.com"
  api_key: "${TEST_LLM_KEY}"
`))
	require.NoError(t, err)

	assert.Equal(t, "sk-from-env", cfg.LLM.APIKey)
}

func TestLoadFromFile_NotFound(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 10*time.Second, GetDuration(10000))
	assert.Equal(t, 250*time.Millisecond, GetDuration(250))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}
