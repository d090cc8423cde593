// Package errors provides standardized error values for the answer pipeline.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"
	ErrCodeRequestInvalid ErrorCode = "REQUEST_INVALID"

	ErrCodeSearchFailed  ErrorCode = "SEARCH_FAILED"
	ErrCodeSearchTimeout ErrorCode = "SEARCH_TIMEOUT"

	ErrCodeScrapeFailed ErrorCode = "SCRAPE_FAILED"

	ErrCodeGenerationUnauthorized  ErrorCode = "GENERATION_UNAUTHORIZED"
	ErrCodeGenerationQuotaExceeded ErrorCode = "GENERATION_QUOTA_EXCEEDED"
	ErrCodeGenerationRateLimited   ErrorCode = "GENERATION_RATE_LIMITED"
	ErrCodeGenerationTimeout       ErrorCode = "GENERATION_TIMEOUT"
	ErrCodeGenerationFailed        ErrorCode = "GENERATION_FAILED"
)

// ServiceError is a structured application error. StatusCode carries the
// upstream HTTP status when one was observed; zero means unknown.
type ServiceError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
	StatusCode int       `json:"statusCode,omitempty"`
	Retryable  bool      `json:"retryable"`
	Timestamp  time.Time `json:"timestamp"`
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("ServiceError[%s]: %s", e.Code, e.Message)
}

// NewConfigInvalidError creates a non-retryable configuration error.
func NewConfigInvalidError(details string) *ServiceError {
	return &ServiceError{
		Code:      ErrCodeConfigInvalid,
		Message:   "Missing or invalid configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestInvalidError creates a non-retryable request validation error.
func NewRequestInvalidError(details string) *ServiceError {
	return &ServiceError{
		Code:      ErrCodeRequestInvalid,
		Message:   "Invalid request payload",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchFailedError creates a retryable search backend error.
func NewSearchFailedError(err error, statusCode int) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeSearchFailed,
		Message:    "Search request failed. Please try again.",
		Details:    err.Error(),
		StatusCode: statusCode,
		Retryable:  true,
		Timestamp:  time.Now().UTC(),
	}
}

// NewSearchTimeoutError creates a retryable search timeout error.
func NewSearchTimeoutError() *ServiceError {
	return &ServiceError{
		Code:      ErrCodeSearchTimeout,
		Message:   "Search request timed out. Please try again.",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewScrapeFailedError creates a per-item scrape error. Recovered locally by
// the enrichment stage, never surfaced to the caller.
func NewScrapeFailedError(url string, err error) *ServiceError {
	return &ServiceError{
		Code:      ErrCodeScrapeFailed,
		Message:   "Content fetch failed",
		Details:   fmt.Sprintf("url: %s, error: %s", url, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// generationTable maps upstream HTTP status codes from the generation service
// to user-facing messages and remediation suggestions. Unknown statuses fall
// back to a generic message containing the raw error text.
var generationTable = map[int]struct {
	code       ErrorCode
	message    string
	suggestion string
	retryable  bool
}{
	401: {
		code:       ErrCodeGenerationUnauthorized,
		message:    "The model rejected the provided credentials.",
		suggestion: "Verify the generation API key is set and has not been revoked.",
	},
	402: {
		code:       ErrCodeGenerationQuotaExceeded,
		message:    "The generation account has insufficient quota.",
		suggestion: "Add credits to the generation account or switch to a smaller model.",
	},
	403: {
		code:       ErrCodeGenerationUnauthorized,
		message:    "The model rejected the provided credentials.",
		suggestion: "Verify the generation API key has access to the configured model.",
	},
	429: {
		code:       ErrCodeGenerationRateLimited,
		message:    "The generation service is rate limiting requests.",
		suggestion: "Wait a moment and retry, or lower the request rate.",
		retryable:  true,
	},
	408: {
		code:       ErrCodeGenerationTimeout,
		message:    "The generation request timed out.",
		suggestion: "Retry the request. Persistent timeouts may indicate provider issues.",
		retryable:  true,
	},
	504: {
		code:       ErrCodeGenerationTimeout,
		message:    "The generation request timed out.",
		suggestion: "Retry the request. Persistent timeouts may indicate provider issues.",
		retryable:  true,
	},
}

// NewGenerationError maps a generation-service failure to a ServiceError using
// the upstream status code when one is known.
func NewGenerationError(statusCode int, err error) *ServiceError {
	if entry, ok := generationTable[statusCode]; ok {
		return &ServiceError{
			Code:       entry.code,
			Message:    entry.message,
			Suggestion: entry.suggestion,
			Details:    err.Error(),
			StatusCode: statusCode,
			Retryable:  entry.retryable,
			Timestamp:  time.Now().UTC(),
		}
	}
	return &ServiceError{
		Code:       ErrCodeGenerationFailed,
		Message:    fmt.Sprintf("Answer generation failed: %s", err.Error()),
		Details:    err.Error(),
		StatusCode: statusCode,
		Retryable:  true,
		Timestamp:  time.Now().UTC(),
	}
}

// IsRetryable reports whether err is a retryable ServiceError.
func IsRetryable(err error) bool {
	if se, ok := err.(*ServiceError); ok {
		return se.Retryable
	}
	return false
}
