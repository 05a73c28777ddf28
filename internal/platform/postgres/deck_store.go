package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/billdonner/obo-gen/internal/domain"
	"github.com/billdonner/obo-gen/internal/platform/logger"
	"github.com/billdonner/obo-gen/internal/store"
)

// PostgresDeckStore implements the store.DeckStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDeckStore creates a new PostgreSQL implementation of the DeckStore interface.
// db is either a *sql.DB owned by the store (closed by Close) or a *sql.Tx
// managed by the caller, in which case Save runs inside that transaction.
// If logger is nil, a default logger will be used.
func NewPostgresDeckStore(db store.DBTX, logger *slog.Logger) *PostgresDeckStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure PostgresDeckStore implements store.DeckStore interface
var _ store.DeckStore = (*PostgresDeckStore)(nil)

// Save implements store.DeckStore.Save.
// The deck row and every card row are written in one transaction.
func (s *PostgresDeckStore) Save(ctx context.Context, deck *domain.Deck) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := store.ValidateForSave(deck); err != nil {
		log.Warn("deck validation failed during save", slog.String("error", err.Error()))
		return uuid.Nil, err
	}

	id := uuid.New()
	write := func(ctx context.Context, tx store.DBTX) error {
		return insertDeck(ctx, tx, id, deck)
	}

	var err error
	switch db := s.db.(type) {
	case *sql.DB:
		err = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			return write(ctx, tx)
		})
	default:
		err = write(ctx, db)
	}

	if err != nil {
		log.Error("failed to save deck",
			slog.String("title", deck.Title),
			slog.Int("card_count", deck.CardCount()),
			slog.String("error", err.Error()))
		return uuid.Nil, store.NewStoreError("deck", "save", "failed to save deck", MapError(err))
	}

	log.Debug("deck saved",
		slog.String("deck_id", id.String()),
		slog.Int("card_count", deck.CardCount()))
	return id, nil
}

func insertDeck(ctx context.Context, db store.DBTX, id uuid.UUID, deck *domain.Deck) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO decks (id, topic, age_range, voice, card_count)
		VALUES ($1, $2, $3, $4, $5)
	`, id, deck.Title, deck.AgeRange, deck.Voice.Ptr(), deck.CardCount())
	if err != nil {
		return fmt.Errorf("insert deck: %w", err)
	}

	for _, card := range deck.Cards {
		_, err := db.ExecContext(ctx, `
			INSERT INTO cards (id, deck_id, position, question, answer)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New(), id, card.Position, card.Question, card.Answer)
		if err != nil {
			return fmt.Errorf("insert card %d: %w", card.Position, err)
		}
	}

	return nil
}

// List implements store.DeckStore.List.
func (s *PostgresDeckStore) List(ctx context.Context) ([]domain.DeckSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, topic, age_range, card_count, created_at
		FROM decks
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		log.Error("failed to query decks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("deck", "list", "failed to query decks", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	summaries := []domain.DeckSummary{}
	for rows.Next() {
		var sum domain.DeckSummary
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.AgeRange, &sum.CardCount, &sum.CreatedAt); err != nil {
			return nil, store.NewStoreError("deck", "list", "failed to scan deck", err)
		}
		summaries = append(summaries, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("deck", "list", "failed to iterate decks", MapError(err))
	}

	log.Debug("listed decks", slog.Int("count", len(summaries)))
	return summaries, nil
}

// Fetch implements store.DeckStore.Fetch.
func (s *PostgresDeckStore) Fetch(ctx context.Context, ref string) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	parsed, err := store.ParseDeckRef(ref)
	if err != nil {
		return nil, err
	}

	const columns = `SELECT id, topic, age_range, voice, created_at FROM decks`
	var row *sql.Row
	if parsed.Exact {
		row = s.db.QueryRowContext(ctx, columns+` WHERE id = $1`, parsed.ID)
	} else {
		row = s.db.QueryRowContext(ctx,
			columns+` WHERE id::text LIKE $1 || '%' ORDER BY created_at ASC, id ASC LIMIT 1`,
			parsed.Prefix)
	}

	var (
		deck  domain.Deck
		voice sql.NullString
	)
	err = row.Scan(&deck.ID, &deck.Title, &deck.AgeRange, &voice, &deck.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found", slog.String("ref", ref))
		return nil, fmt.Errorf("%w: %s", store.ErrDeckNotFound, ref)
	}
	if err != nil {
		log.Error("failed to fetch deck", slog.String("ref", ref), slog.String("error", err.Error()))
		return nil, store.NewStoreError("deck", "fetch", "failed to fetch deck", MapError(err))
	}
	if voice.Valid {
		deck.Voice = domain.SomeVoice(voice.String)
	}

	cards, err := s.fetchCards(ctx, deck.ID)
	if err != nil {
		log.Error("failed to fetch cards",
			slog.String("deck_id", deck.ID.String()),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("card", "fetch", "failed to fetch cards", MapError(err))
	}
	deck.Cards = cards

	return &deck, nil
}

func (s *PostgresDeckStore) fetchCards(ctx context.Context, deckID uuid.UUID) ([]domain.Card, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, question, answer
		FROM cards
		WHERE deck_id = $1
		ORDER BY position ASC
	`, deckID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cards := []domain.Card{}
	for rows.Next() {
		var c domain.Card
		if err := rows.Scan(&c.Position, &c.Question, &c.Answer); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// Close implements store.DeckStore.Close. It closes the connection when
// the store owns a *sql.DB and is a no-op for caller-managed transactions.
func (s *PostgresDeckStore) Close() error {
	if db, ok := s.db.(*sql.DB); ok {
		return db.Close()
	}
	return nil
}
