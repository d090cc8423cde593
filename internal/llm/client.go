// internal/llm/client.go
package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"answer-engine/internal/common/config"
	commonerrors "answer-engine/internal/common/errors"
	"answer-engine/internal/common/logger"
)

// Client calls an OpenAI-compatible generation service. Failures come back
// as *errors.ServiceError produced here, so callers never inspect error
// shapes ad hoc.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxRetries  int
	client      *http.Client
	logger      logger.Logger
}

func NewClient(cfg config.LLMConfig, log logger.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxRetries:  cfg.MaxRetries,
		// No client timeout; the context bounds long-lived streams.
		client: &http.Client{},
		logger: log.WithFields(map[string]interface{}{"component": "llm"}),
	}
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	Stream      bool      `json:"stream,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Complete performs a non-streaming completion with bounded retries on
// transient failure.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", commonerrors.NewGenerationError(http.StatusRequestTimeout, ctx.Err())
			}
		}

		text, retryable, err := c.completeOnce(ctx, messages)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}

		c.logger.Warn("generation attempt failed, retrying", map[string]interface{}{
			"attempt": attempt + 1,
			"error":   err.Error(),
		})
	}

	return "", lastErr
}

func (c *Client) completeOnce(ctx context.Context, messages []Message) (string, bool, error) {
	resp, retryable, err := c.post(ctx, messages, false)
	if err != nil {
		return "", retryable, err
	}
	defer resp.Body.Close()

	var decoded completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", true, commonerrors.NewGenerationError(0, fmt.Errorf("decode completion: %w", err))
	}
	if len(decoded.Choices) == 0 {
		return "", true, commonerrors.NewGenerationError(0, fmt.Errorf("completion returned no choices"))
	}
	return decoded.Choices[0].Message.Content, false, nil
}

// Stream performs a streaming completion, invoking onDelta for each
// received text chunk, and returns the accumulated full text. Connection failures
// before the first chunk are retried; a broken stream mid-answer is not.
func (c *Client) Stream(ctx context.Context, messages []Message, onDelta func(string) error) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", commonerrors.NewGenerationError(http.StatusRequestTimeout, ctx.Err())
			}
		}

		resp, retryable, err := c.post(ctx, messages, true)
		if err != nil {
			lastErr = err
			if !retryable {
				return "", err
			}
			c.logger.Warn("stream connect failed, retrying", map[string]interface{}{
				"attempt": attempt + 1,
				"error":   err.Error(),
			})
			continue
		}

		text, err := c.consumeStream(ctx, resp, onDelta)
		if err != nil {
			return "", err
		}
		return text, nil
	}

	return "", lastErr
}

// post issues the completion request and classifies failures. The bool
// reports whether the failure is worth retrying.
func (c *Client) post(ctx context.Context, messages []Message, stream bool) (*http.Response, bool, error) {
	body, err := json.Marshal(completionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		Stream:      stream,
	})
	if err != nil {
		return nil, false, commonerrors.NewGenerationError(0, fmt.Errorf("marshal completion request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, false, commonerrors.NewGenerationError(0, fmt.Errorf("build completion request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if stream {
		req.Header.Set("Accept", "text/event-stream")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, commonerrors.NewGenerationError(http.StatusRequestTimeout, err)
		}
		return nil, true, commonerrors.NewGenerationError(0, err)
	}

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		svcErr := commonerrors.NewGenerationError(resp.StatusCode, fmt.Errorf("generation API returned %d: %s", resp.StatusCode, string(raw)))
		return nil, svcErr.Retryable, svcErr
	}

	return resp, false, nil
}

// consumeStream reads the SSE event stream, forwarding each text delta.
func (c *Client) consumeStream(ctx context.Context, resp *http.Response, onDelta func(string) error) (string, error) {
	defer resp.Body.Close()

	var full strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			break
		}

		var chunk completionResponse
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}

		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}

		full.WriteString(delta)
		if onDelta != nil {
			if err := onDelta(delta); err != nil {
				return "", err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return "", commonerrors.NewGenerationError(http.StatusRequestTimeout, err)
		}
		return "", commonerrors.NewGenerationError(0, fmt.Errorf("read stream: %w", err))
	}

	return full.String(), nil
}
