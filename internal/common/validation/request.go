// internal/common/validation/request.go
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// chatRequestSchema validates the inbound chat payload before the pipeline
// runs. Messages must be a non-empty array of role/content entries.
const chatRequestSchema = `{
	"type": "object",
	"properties": {
		"messages": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"properties": {
					"role": {
						"type": "string",
						"enum": ["system", "user", "assistant"]
					},
					"content": {
						"type": "string",
						"minLength": 1
					}
				},
				"required": ["role", "content"],
				"additionalProperties": false
			}
		}
	},
	"required": ["messages"]
}`

var chatSchema = gojsonschema.NewStringLoader(chatRequestSchema)

// ValidateChatRequest checks the raw request body against the chat schema.
// Returns a single error describing every violation.
func ValidateChatRequest(body []byte) error {
	result, err := gojsonschema.Validate(chatSchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if result.Valid() {
		return nil
	}

	var details []string
	for _, desc := range result.Errors() {
		details = append(details, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return fmt.Errorf("invalid chat request: %s", strings.Join(details, "; "))
}
