package cli

import (
	"errors"
	"fmt"

	"github.com/billdonner/obo-gen/internal/generation"
	"github.com/billdonner/obo-gen/internal/store"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// UsageError reports invalid arguments or flags. It is detected before any
// network or store access.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func usageErrorf(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// ExitCode maps an error returned by the root command to an exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitUsage
	}
	return ExitFailure
}

// describe renders err for the user. Not-found and missing credentials get
// their own wording.
func describe(err error) string {
	switch {
	case store.IsNotFoundError(err):
		return fmt.Sprintf("deck not found (%v)", err)
	case errors.Is(err, generation.ErrMissingCredential):
		return "missing Gemini API key: set GEMINI_API_KEY or OBO_LLM_GEMINI_API_KEY"
	default:
		return err.Error()
	}
}
