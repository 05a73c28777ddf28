package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package
var (
	// ErrInvalidRequest is returned when a Request fails validation.
	ErrInvalidRequest = errors.New("invalid generation request")

	// ErrInvalidResponse is returned when the provider answers without usable text
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the provider blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTimeout is returned when the provider does not answer within the request timeout
	ErrTimeout = errors.New("language model request timed out")

	// ErrProviderStatus is wrapped by ProviderError for non-success responses
	ErrProviderStatus = errors.New("language model provider returned an error status")

	// ErrMissingCredential is returned when no API key is configured
	ErrMissingCredential = errors.New("missing language model API key")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// ProviderError carries the status code and message of a non-success
// provider response.
type ProviderError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("language model provider returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("language model provider returned status %d: %s", e.StatusCode, e.Message)
}

// Unwrap lets errors.Is match ErrProviderStatus.
func (e *ProviderError) Unwrap() error {
	return ErrProviderStatus
}
