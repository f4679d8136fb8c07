package llm

import "errors"

var (
	// ErrUnavailable indicates the provider could not be reached.
	ErrUnavailable = errors.New("llm provider unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrMissingAPIKey indicates a hosted provider was called without a key.
	ErrMissingAPIKey = errors.New("llm api key not configured")

	// ErrEmptyResponse indicates the provider answered with no text.
	ErrEmptyResponse = errors.New("llm returned an empty response")

	// ErrRequestFailed indicates the provider rejected the request.
	ErrRequestFailed = errors.New("llm request failed")
)
