// internal/pipeline/prompts_test.go
package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"answer-engine/internal/llm"
	"answer-engine/internal/search"
)

func TestBuildAnswerMessages_GroundsLatestTurn(t *testing.T) {
	history := []llm.Message{
		{Role: llm.RoleUser, Content: "who built the Eiffel Tower?"},
	}

	messages := buildAnswerMessages(history, "[1] Eiffel Tower\nURL: https://x\nbody", "who built the Eiffel Tower?")

	require.Len(t, messages, 2)
	assert.Equal(t, llm.RoleSystem, messages[0].Role)
	assert.Equal(t, llm.RoleUser, messages[1].Role)
	assert.Contains(t, messages[1].Content, "Context:")
	assert.Contains(t, messages[1].Content, "[1] Eiffel Tower")
	assert.Contains(t, messages[1].Content, "Question: who built the Eiffel Tower?")
}

func TestBuildAnswerMessages_KeepsPriorTurnsVerbatim(t *testing.T) {
	history := []llm.Message{
		{Role: llm.RoleUser, Content: "first"},
		{Role: llm.RoleAssistant, Content: "first answer"},
		{Role: llm.RoleUser, Content: "second"},
	}

	messages := buildAnswerMessages(history, "ctx", "second")

	require.Len(t, messages, 4)
	assert.Equal(t, "first", messages[1].Content)
	assert.Equal(t, "first answer", messages[2].Content)
	assert.Contains(t, messages[3].Content, "Question: second")
}

func TestBuildAnswerMessages_NoContextSendsBareQuestion(t *testing.T) {
	history := []llm.Message{{Role: llm.RoleUser, Content: "hello"}}

	messages := buildAnswerMessages(history, "", "hello")

	require.Len(t, messages, 2)
	assert.Equal(t, "hello", messages[1].Content)
}

func TestBuildFollowupMessages(t *testing.T) {
	sources := []search.Source{
		{Title: "Eiffel Tower"},
		{Title: ""},
		{Title: "Official site"},
	}

	messages := buildFollowupMessages("the answer", sources)

	require.Len(t, messages, 2)
	assert.Equal(t, llm.RoleSystem, messages[0].Role)
	assert.Contains(t, messages[1].Content, "the answer")
	assert.Contains(t, messages[1].Content, "Eiffel Tower")
	assert.Contains(t, messages[1].Content, "Official site")
}
