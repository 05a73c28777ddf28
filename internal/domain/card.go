package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Card-specific validation errors
var (
	// ErrCardQuestionEmpty is returned when a card's question is blank.
	ErrCardQuestionEmpty = fmt.Errorf("%w: card question", ErrEmptyContent)

	// ErrCardAnswerEmpty is returned when a card's answer is blank.
	ErrCardAnswerEmpty = fmt.Errorf("%w: card answer", ErrEmptyContent)

	// ErrCardPositionInvalid is returned when a card position is not positive.
	ErrCardPositionInvalid = errors.New("card position must be positive")
)

// Card is one question/answer pair. A card has no identity of its own:
// it is addressed by its 1-based position inside the owning deck.
type Card struct {
	Position int    `json:"position"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// NewCard creates a card at the given position, trimming both sides.
// Returns an error if validation fails.
func NewCard(position int, question, answer string) (Card, error) {
	card := Card{
		Position: position,
		Question: strings.TrimSpace(question),
		Answer:   strings.TrimSpace(answer),
	}

	if err := card.Validate(); err != nil {
		return Card{}, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c Card) Validate() error {
	if c.Position < 1 {
		return ErrCardPositionInvalid
	}

	if strings.TrimSpace(c.Question) == "" {
		return ErrCardQuestionEmpty
	}

	if strings.TrimSpace(c.Answer) == "" {
		return ErrCardAnswerEmpty
	}

	return nil
}
