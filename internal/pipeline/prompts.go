// internal/pipeline/prompts.go
package pipeline

import (
	"fmt"
	"strings"

	"answer-engine/internal/llm"
	"answer-engine/internal/search"
)

const answerSystemPrompt = `You are a helpful research assistant. Answer the user's question using the numbered context blocks below. Cite every claim with the matching bracketed number, e.g. [1]. If the context does not contain the answer, say so. Be concise and factual.`

const followupSystemPrompt = `Given an answer and the titles of its sources, suggest up to 5 short follow-up questions the user might ask next, one per line, without numbering. If the conversation is trivial (a greeting, small talk), reply with exactly: NONE`

// buildAnswerMessages assembles the generation conversation: system prompt,
// prior turns verbatim, then the current question grounded in the rendered
// context blocks.
func buildAnswerMessages(history []llm.Message, contextText, query string) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: answerSystemPrompt})

	// Prior turns, excluding the latest user message which is re-sent with
	// context attached.
	for _, m := range history[:len(history)-1] {
		messages = append(messages, m)
	}

	content := query
	if contextText != "" {
		content = fmt.Sprintf("Context:\n%s\n\nQuestion: %s", contextText, query)
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: content})

	return messages
}

// buildFollowupMessages assembles the follow-up generation request from the
// final answer text and the source titles.
func buildFollowupMessages(answer string, sources []search.Source) []llm.Message {
	titles := make([]string, 0, len(sources))
	for _, src := range sources {
		if src.Title != "" {
			titles = append(titles, src.Title)
		}
	}

	user := fmt.Sprintf("Answer:\n%s\n\nSources:\n%s", answer, strings.Join(titles, "\n"))
	return []llm.Message{
		{Role: llm.RoleSystem, Content: followupSystemPrompt},
		{Role: llm.RoleUser, Content: user},
	}
}
