package generation

import "context"

// Generator produces raw deck text for a request.
// Implementations perform one blocking provider call bounded by a timeout
// and do not retry.
type Generator interface {
	// GenerateDeck returns the provider's deck text for req.
	// Failures are reported with the errors defined in this package:
	// *ProviderError for non-success statuses, ErrTimeout, ErrContentBlocked
	// and ErrInvalidResponse.
	GenerateDeck(ctx context.Context, req Request) (string, error)
}
