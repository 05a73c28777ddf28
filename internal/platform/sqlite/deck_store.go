package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/billdonner/obo-gen/internal/domain"
	"github.com/billdonner/obo-gen/internal/platform/logger"
	"github.com/billdonner/obo-gen/internal/store"
)

// SQLiteDeckStore implements the store.DeckStore interface on top of gorm
// and SQLite.
type SQLiteDeckStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewSQLiteDeckStore wraps an opened, migrated gorm connection.
// If logger is nil, a default logger will be used.
func NewSQLiteDeckStore(db *gorm.DB, logger *slog.Logger) *SQLiteDeckStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SQLiteDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure SQLiteDeckStore implements store.DeckStore interface
var _ store.DeckStore = (*SQLiteDeckStore)(nil)

// Save implements store.DeckStore.Save.
func (s *SQLiteDeckStore) Save(ctx context.Context, deck *domain.Deck) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := store.ValidateForSave(deck); err != nil {
		log.Warn("deck validation failed during save", slog.String("error", err.Error()))
		return uuid.Nil, err
	}

	id := uuid.New()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := newDeckRecord(id, deck)
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("insert deck: %w", err)
		}

		for _, card := range deck.Cards {
			cardRec := newCardRecord(id, card)
			if err := tx.Create(&cardRec).Error; err != nil {
				return fmt.Errorf("insert card %d: %w", card.Position, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to save deck",
			slog.String("title", deck.Title),
			slog.Int("card_count", deck.CardCount()),
			slog.String("error", err.Error()))
		return uuid.Nil, store.NewStoreError("deck", "save", "failed to save deck", mapError(err))
	}

	log.Debug("deck saved",
		slog.String("deck_id", id.String()),
		slog.Int("card_count", deck.CardCount()))
	return id, nil
}

// List implements store.DeckStore.List.
func (s *SQLiteDeckStore) List(ctx context.Context) ([]domain.DeckSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var recs []deckRecord
	err := s.db.WithContext(ctx).
		Order("created_at ASC").
		Order("rowid ASC").
		Find(&recs).Error
	if err != nil {
		log.Error("failed to query decks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("deck", "list", "failed to query decks", mapError(err))
	}

	summaries := make([]domain.DeckSummary, 0, len(recs))
	for _, rec := range recs {
		sum, err := rec.summary()
		if err != nil {
			return nil, store.NewStoreError("deck", "list", "corrupt deck identifier", err)
		}
		summaries = append(summaries, sum)
	}

	log.Debug("listed decks", slog.Int("count", len(summaries)))
	return summaries, nil
}

// Fetch implements store.DeckStore.Fetch.
func (s *SQLiteDeckStore) Fetch(ctx context.Context, ref string) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	parsed, err := store.ParseDeckRef(ref)
	if err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).Preload("Cards", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
	if parsed.Exact {
		query = query.Where("id = ?", parsed.ID.String())
	} else {
		query = query.Where("id LIKE ?", parsed.Prefix+"%").
			Order("created_at ASC").
			Order("rowid ASC")
	}

	var rec deckRecord
	err = query.Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Debug("deck not found", slog.String("ref", ref))
		return nil, fmt.Errorf("%w: %s", store.ErrDeckNotFound, ref)
	}
	if err != nil {
		log.Error("failed to fetch deck", slog.String("ref", ref), slog.String("error", err.Error()))
		return nil, store.NewStoreError("deck", "fetch", "failed to fetch deck", mapError(err))
	}

	deck, err := rec.toDomain()
	if err != nil {
		return nil, store.NewStoreError("deck", "fetch", "corrupt deck identifier", err)
	}
	return deck, nil
}

// Close implements store.DeckStore.Close.
func (s *SQLiteDeckStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: foreign key violation: %v", store.ErrInvalidEntity, err)
	default:
		return err
	}
}
