package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTitle is used when deck text carries no usable title.
const DefaultTitle = "Untitled"

// Deck-specific validation errors
var (
	// ErrDeckTitleEmpty is returned when a deck's title is blank.
	ErrDeckTitleEmpty = fmt.Errorf("%w: deck title", ErrEmptyContent)

	// ErrDeckAgeRangeEmpty is returned when a deck's age range is blank.
	ErrDeckAgeRangeEmpty = fmt.Errorf("%w: deck age range", ErrEmptyContent)

	// ErrDeckNoCards is returned when a deck has no cards.
	ErrDeckNoCards = errors.New("deck has no cards")
)

// Metadata is the caller-supplied information stored alongside a deck.
type Metadata struct {
	AgeRange string
	Voice    Voice
}

// Deck is a titled, ordered collection of cards.
//
// ID and CreatedAt are assigned by the store when the deck is persisted and
// are zero for decks that only exist in memory. Decks are never mutated
// after creation.
type Deck struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	AgeRange  string    `json:"age_range"`
	Voice     Voice     `json:"-"`
	Cards     []Card    `json:"cards"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDeck builds an in-memory deck from a title, cards and metadata.
// Card positions are renumbered 1..N in list order. A blank title falls
// back to DefaultTitle. Returns an error if validation fails.
func NewDeck(title string, cards []Card, meta Metadata) (*Deck, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}

	numbered := make([]Card, len(cards))
	for i, c := range cards {
		c.Position = i + 1
		numbered[i] = c
	}

	deck := &Deck{
		Title:    title,
		AgeRange: strings.TrimSpace(meta.AgeRange),
		Voice:    meta.Voice,
		Cards:    numbered,
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// CardCount is the number of cards in the deck.
func (d *Deck) CardCount() int {
	return len(d.Cards)
}

// Validate checks the deck fields and that card positions form a dense
// 1..N sequence matching list order. An empty card list is valid here;
// the store refuses to persist it.
func (d *Deck) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrDeckTitleEmpty
	}

	for i, c := range d.Cards {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("card %d: %w", i+1, err)
		}
		if c.Position != i+1 {
			return fmt.Errorf("%w: card %d has position %d", ErrInvalidPosition, i+1, c.Position)
		}
	}

	return nil
}

// ValidateForSave applies the stricter rules a persisted deck must meet.
func (d *Deck) ValidateForSave() error {
	if err := d.Validate(); err != nil {
		return err
	}

	if strings.TrimSpace(d.AgeRange) == "" {
		return ErrDeckAgeRangeEmpty
	}

	if len(d.Cards) == 0 {
		return ErrDeckNoCards
	}

	return nil
}

// Summary returns the list view of the deck.
func (d *Deck) Summary() DeckSummary {
	return DeckSummary{
		ID:        d.ID,
		Title:     d.Title,
		AgeRange:  d.AgeRange,
		CardCount: d.CardCount(),
		CreatedAt: d.CreatedAt,
	}
}

// DeckSummary is one row of the deck listing.
type DeckSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	AgeRange  string    `json:"age_range"`
	CardCount int       `json:"card_count"`
	CreatedAt time.Time `json:"created_at"`
}

// ShortID is the first block of the identifier, enough for prefix lookup.
func (s DeckSummary) ShortID() string {
	return strings.SplitN(s.ID.String(), "-", 2)[0]
}
