package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/billdonner/obo-gen/internal/deckfmt"
	"github.com/billdonner/obo-gen/internal/domain"
	"github.com/billdonner/obo-gen/internal/generation"
	"github.com/billdonner/obo-gen/internal/platform/logger"
	"github.com/billdonner/obo-gen/internal/redact"
	"github.com/billdonner/obo-gen/internal/store"
)

// GenerateRequest describes one generate operation.
type GenerateRequest struct {
	Topic    string
	AgeRange string
	Count    int
	Voice    domain.Voice
	Save     bool
}

// GenerateResult is the outcome of a generate operation.
type GenerateResult struct {
	// Text is the normalized deck text to emit.
	Text string

	// Deck is the parsed deck. It is nil when the text held no cards.
	Deck *domain.Deck

	// DeckID is set when the deck was saved.
	DeckID *uuid.UUID

	// Warnings holds non-fatal problems (ErrNoCards, ErrPersistence).
	Warnings []error
}

// DeckService coordinates generation, parsing and persistence of decks.
type DeckService struct {
	generator generation.Generator
	opener    store.Opener
	logger    *slog.Logger
}

// NewDeckService creates a DeckService. generator may be nil for
// list/export-only use; opener must not be nil.
func NewDeckService(generator generation.Generator, opener store.Opener, logger *slog.Logger) *DeckService {
	if opener == nil {
		panic("opener cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &DeckService{
		generator: generator,
		opener:    opener,
		logger:    logger.With(slog.String("component", "deck_service")),
	}
}

// Generate asks the generator for deck text, parses it and, when req.Save
// is set and the text holds cards, saves the deck. Generator errors are
// returned; parse and persistence problems become warnings.
func (s *DeckService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if s.generator == nil {
		return nil, fmt.Errorf("%w: no generator configured", ErrGeneration)
	}

	genReq := generation.Request{Topic: req.Topic, AgeRange: req.AgeRange, Count: req.Count}
	raw, err := s.generator.GenerateDeck(ctx, genReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	result := &GenerateResult{Text: deckfmt.Normalize(raw, req.Voice)}

	parsed := deckfmt.Parse(raw)
	if parsed.CardCount() == 0 {
		log.Warn("generated text contains no cards", slog.String("topic", req.Topic))
		result.Warnings = append(result.Warnings, ErrNoCards)
		return result, nil
	}

	voice := req.Voice
	if !voice.IsPresent() {
		voice = parsed.Voice
	}
	deck, err := domain.NewDeck(parsed.Title, parsed.Cards, domain.Metadata{AgeRange: req.AgeRange, Voice: voice})
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Errorf("%w: %w", ErrPersistence, err))
		return result, nil
	}
	result.Deck = deck

	if !req.Save {
		log.Debug("persistence disabled", slog.String("title", deck.Title))
		return result, nil
	}

	id, err := s.save(ctx, deck)
	if err != nil {
		log.Warn("deck not saved",
			slog.String("title", deck.Title),
			slog.String("error", redact.Error(err)))
		result.Warnings = append(result.Warnings, fmt.Errorf("%w: %w", ErrPersistence, err))
		return result, nil
	}

	deck.ID = id
	result.DeckID = &id
	log.Info("deck saved",
		slog.String("deck_id", id.String()),
		slog.String("title", deck.Title),
		slog.Int("card_count", deck.CardCount()))
	return result, nil
}

func (s *DeckService) save(ctx context.Context, deck *domain.Deck) (id uuid.UUID, err error) {
	err = s.withStore(ctx, func(st store.DeckStore) error {
		var saveErr error
		id, saveErr = st.Save(ctx, deck)
		return saveErr
	})
	return id, err
}

// List returns every saved deck in creation order.
func (s *DeckService) List(ctx context.Context) ([]domain.DeckSummary, error) {
	var out []domain.DeckSummary
	err := s.withStore(ctx, func(st store.DeckStore) error {
		var err error
		out, err = st.List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	return out, nil
}

// Export returns the deck matching ref serialized in the deck text format.
// A miss wraps store.ErrDeckNotFound.
func (s *DeckService) Export(ctx context.Context, ref string) (string, error) {
	var deck *domain.Deck
	err := s.withStore(ctx, func(st store.DeckStore) error {
		var err error
		deck, err = st.Fetch(ctx, ref)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("export deck %q: %w", ref, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("deck exported",
		slog.String("deck_id", deck.ID.String()),
		slog.Int("card_count", deck.CardCount()))
	return deckfmt.Serialize(deck), nil
}

// withStore opens a store for fn and closes it on every path.
func (s *DeckService) withStore(ctx context.Context, fn func(store.DeckStore) error) (err error) {
	st, err := s.opener(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.FromContextOrDefault(ctx, s.logger).Warn("failed to close store",
				slog.String("error", redact.Error(closeErr)))
			if err == nil {
				err = closeErr
			}
		}
	}()

	return fn(st)
}
