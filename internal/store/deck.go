package store

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/billdonner/obo-gen/internal/domain"
	"github.com/google/uuid"
)

// DeckStore defines the interface for deck data persistence.
//
// A store value represents one acquired connection. Callers obtain it from
// an Opener at the start of a logical operation and must Close it on every
// exit path.
type DeckStore interface {
	// Save persists a deck and all of its cards atomically and returns the
	// store-assigned identifier. Either every row commits or none does.
	// Returns ErrEmptyDeck for a deck without cards and ErrInvalidEntity
	// (wrapped) when the deck fails validation.
	Save(ctx context.Context, deck *domain.Deck) (uuid.UUID, error)

	// List returns every persisted deck ordered by creation time, oldest
	// first. Equal timestamps are ordered by id (PostgreSQL) or rowid
	// (SQLite). An empty store yields an empty, non-nil slice.
	List(ctx context.Context) ([]domain.DeckSummary, error)

	// Fetch returns the deck matching ref together with its cards in
	// position order. ref is either a full identifier or a prefix of its
	// textual form; for a prefix shared by several decks the earliest
	// created deck wins. Returns ErrDeckNotFound on a miss and
	// ErrInvalidReference for an empty or malformed ref.
	Fetch(ctx context.Context, ref string) (*domain.Deck, error)

	// Close releases the underlying connection.
	Close() error
}

// Opener acquires a DeckStore for one logical operation.
type Opener func(ctx context.Context) (DeckStore, error)

// DeckRef is a parsed Fetch argument: either an exact identifier or a
// lower-case identifier prefix.
type DeckRef struct {
	ID     uuid.UUID
	Prefix string
	Exact  bool
}

var refPattern = regexp.MustCompile(`^[0-9a-f-]+$`)

// ParseDeckRef validates ref and classifies it as exact or prefix.
// Only the canonical 36-character form counts as exact.
func ParseDeckRef(ref string) (DeckRef, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return DeckRef{}, fmt.Errorf("%w: empty", ErrInvalidReference)
	}

	if !refPattern.MatchString(ref) {
		return DeckRef{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}

	if len(ref) == 36 {
		if id, err := uuid.Parse(ref); err == nil {
			return DeckRef{ID: id, Exact: true}, nil
		}
	}

	return DeckRef{Prefix: ref}, nil
}

// ValidateForSave applies the shared Save preconditions and maps failures
// onto store errors.
func ValidateForSave(deck *domain.Deck) error {
	if deck == nil {
		return fmt.Errorf("%w: nil deck", ErrInvalidEntity)
	}

	if len(deck.Cards) == 0 {
		return ErrEmptyDeck
	}

	if err := deck.ValidateForSave(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}

	return nil
}
