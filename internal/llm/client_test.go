// internal/llm/client_test.go
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"answer-engine/internal/common/config"
	commonerrors "answer-engine/internal/common/errors"
	"answer-engine/internal/common/logger"
)

func newTestClient(srv *httptest.Server, retries int) *Client {
	return NewClient(config.LLMConfig{
		BaseURL:     srv.URL,
		APIKey:      "sk-test",
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		MaxRetries:  retries,
	}, logger.Nop())
}

func TestComplete(t *testing.T) {
	var gotReq completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Write([]byte(`{"choices":[{"message":{"content":"Paris is the capital of France."}}]}`))
	}))
	defer srv.Close()

	text, err := newTestClient(srv, 0).Complete(context.Background(), []Message{
		{Role: RoleUser, Content: "capital of France?"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Paris is the capital of France.", text)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	assert.False(t, gotReq.Stream)
}

func TestComplete_RetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"second try"}}]}`))
	}))
	defer srv.Close()

	text, err := newTestClient(srv, 2).Complete(context.Background(), []Message{{Role: RoleUser, Content: "q"}})

	require.NoError(t, err)
	assert.Equal(t, "second try", text)
	assert.Equal(t, int32(2), calls.Load())
}

func TestComplete_UnauthorizedIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, 3).Complete(context.Background(), []Message{{Role: RoleUser, Content: "q"}})

	require.Error(t, err)
	var svcErr *commonerrors.ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, commonerrors.ErrCodeGenerationUnauthorized, svcErr.Code)
	assert.False(t, svcErr.Retryable)
	assert.Equal(t, int32(1), calls.Load())
}

func TestComplete_ExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, 2).Complete(context.Background(), []Message{{Role: RoleUser, Content: "q"}})

	require.Error(t, err)
	var svcErr *commonerrors.ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, commonerrors.ErrCodeGenerationRateLimited, svcErr.Code)
	assert.Equal(t, int32(3), calls.Load())
}

func writeSSE(w http.ResponseWriter, deltas []string) {
	w.Header().Set("Content-Type", "text/event-stream")
	for _, d := range deltas {
		fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", d)
	}
	fmt.Fprint(w, "data: [DONE]\n\n")
}

func TestStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)
		writeSSE(w, []string{"The ", "Eiffel ", "Tower"})
	}))
	defer srv.Close()

	var deltas []string
	full, err := newTestClient(srv, 0).Stream(context.Background(), []Message{{Role: RoleUser, Content: "q"}}, func(d string) error {
		deltas = append(deltas, d)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "The Eiffel Tower", full)
	assert.Equal(t, []string{"The ", "Eiffel ", "Tower"}, deltas)
}

func TestStream_IgnoresMalformedAndEmptyChunks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, ": comment line\n")
		fmt.Fprint(w, "data: not json\n\n")
		fmt.Fprint(w, "data: {\"choices\":[]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"ok\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	full, err := newTestClient(srv, 0).Stream(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "ok", full)
}

func TestStream_RetriesConnectFailureOnly(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusGatewayTimeout)
			return
		}
		writeSSE(w, []string{"recovered"})
	}))
	defer srv.Close()

	full, err := newTestClient(srv, 2).Stream(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "recovered", full)
	assert.Equal(t, int32(2), calls.Load())
}

func TestStream_OnDeltaErrorAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeSSE(w, []string{"a", "b", "c"})
	}))
	defer srv.Close()

	wantErr := errors.New("consumer gone")
	var seen int
	_, err := newTestClient(srv, 0).Stream(context.Background(), nil, func(d string) error {
		seen++
		if seen == 2 {
			return wantErr
		}
		return nil
	})

	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, 2, seen)
}

func TestStream_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeSSE(w, []string{"never seen"})
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv, 2).Stream(ctx, nil, nil)

	require.Error(t, err)
	var svcErr *commonerrors.ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, commonerrors.ErrCodeGenerationTimeout, svcErr.Code)
}
