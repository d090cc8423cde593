// internal/pipeline/followup.go
package pipeline

import (
	"regexp"
	"strings"
)

const maxFollowups = 5

var listMarker = regexp.MustCompile(`^(\d+[.)]\s*|[-*]\s+)`)

// ParseFollowups extracts follow-up questions from a model response, one
// per line, trimmed to at most five non-empty entries. A response declining
// to produce follow-ups (e.g. for a greeting) yields an empty list.
func ParseFollowups(text string) []string {
	questions := []string{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = listMarker.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "none") {
			continue
		}

		questions = append(questions, line)
		if len(questions) == maxFollowups {
			break
		}
	}

	return questions
}
