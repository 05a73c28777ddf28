package sqlite

import (
	"time"

	"github.com/google/uuid"

	"github.com/billdonner/obo-gen/internal/domain"
)

// deckRecord is the row shape of the decks table.
type deckRecord struct {
	ID        string       `gorm:"primaryKey;type:text"`
	Topic     string       `gorm:"not null;check:chk_decks_topic,topic <> ''"`
	AgeRange  string       `gorm:"not null;check:chk_decks_age_range,age_range <> ''"`
	Voice     *string      `gorm:"default:null"`
	CardCount int          `gorm:"not null;check:chk_decks_card_count,card_count >= 1"`
	CreatedAt time.Time    `gorm:"not null;index:idx_decks_created_at"`
	Cards     []cardRecord `gorm:"foreignKey:DeckID;constraint:OnDelete:CASCADE"`
}

func (deckRecord) TableName() string { return "decks" }

// cardRecord is the row shape of the cards table.
type cardRecord struct {
	ID       string `gorm:"primaryKey;type:text"`
	DeckID   string `gorm:"not null;type:text;uniqueIndex:idx_cards_deck_position"`
	Position int    `gorm:"not null;uniqueIndex:idx_cards_deck_position;check:chk_cards_position,position > 0"`
	Question string `gorm:"not null;check:chk_cards_question,question <> ''"`
	Answer   string `gorm:"not null;check:chk_cards_answer,answer <> ''"`
}

func (cardRecord) TableName() string { return "cards" }

func newDeckRecord(id uuid.UUID, deck *domain.Deck) deckRecord {
	return deckRecord{
		ID:        id.String(),
		Topic:     deck.Title,
		AgeRange:  deck.AgeRange,
		Voice:     deck.Voice.Ptr(),
		CardCount: deck.CardCount(),
	}
}

func newCardRecord(deckID uuid.UUID, card domain.Card) cardRecord {
	return cardRecord{
		ID:       uuid.NewString(),
		DeckID:   deckID.String(),
		Position: card.Position,
		Question: card.Question,
		Answer:   card.Answer,
	}
}

func (r deckRecord) summary() (domain.DeckSummary, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return domain.DeckSummary{}, err
	}

	return domain.DeckSummary{
		ID:        id,
		Title:     r.Topic,
		AgeRange:  r.AgeRange,
		CardCount: r.CardCount,
		CreatedAt: r.CreatedAt,
	}, nil
}

func (r deckRecord) toDomain() (*domain.Deck, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}

	cards := make([]domain.Card, 0, len(r.Cards))
	for _, c := range r.Cards {
		cards = append(cards, domain.Card{Position: c.Position, Question: c.Question, Answer: c.Answer})
	}

	return &domain.Deck{
		ID:        id,
		Title:     r.Topic,
		AgeRange:  r.AgeRange,
		Voice:     domain.VoiceFromPtr(r.Voice),
		Cards:     cards,
		CreatedAt: r.CreatedAt,
	}, nil
}
