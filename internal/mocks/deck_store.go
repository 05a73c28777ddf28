package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/billdonner/obo-gen/internal/domain"
	"github.com/billdonner/obo-gen/internal/store"
)

// MockDeckStore is an in-memory store.DeckStore. Without function
// overrides it behaves like a real store: Save validates and assigns
// identifiers, List returns decks in save order and Fetch resolves
// identifiers and prefixes.
type MockDeckStore struct {
	SaveFn  func(ctx context.Context, deck *domain.Deck) (uuid.UUID, error)
	ListFn  func(ctx context.Context) ([]domain.DeckSummary, error)
	FetchFn func(ctx context.Context, ref string) (*domain.Deck, error)
	CloseFn func() error

	// OpenErr makes Opener fail.
	OpenErr error

	mu      sync.Mutex
	decks   []domain.Deck
	opens   int
	closes  int
	clock   time.Time
	fetches []string
}

// Ensure MockDeckStore implements store.DeckStore interface
var _ store.DeckStore = (*MockDeckStore)(nil)

// NewMockDeckStore creates an empty in-memory store.
func NewMockDeckStore() *MockDeckStore {
	return &MockDeckStore{clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Opener returns a store.Opener handing out this store.
func (m *MockDeckStore) Opener() store.Opener {
	return func(ctx context.Context) (store.DeckStore, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.OpenErr != nil {
			return nil, m.OpenErr
		}
		m.opens++
		return m, nil
	}
}

// Save implements store.DeckStore.
func (m *MockDeckStore) Save(ctx context.Context, deck *domain.Deck) (uuid.UUID, error) {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, deck)
	}

	if err := store.ValidateForSave(deck); err != nil {
		return uuid.Nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.clock = m.clock.Add(time.Second)
	saved := *deck
	saved.ID = uuid.New()
	saved.CreatedAt = m.clock
	saved.Cards = append([]domain.Card(nil), deck.Cards...)
	m.decks = append(m.decks, saved)
	return saved.ID, nil
}

// List implements store.DeckStore.
func (m *MockDeckStore) List(ctx context.Context) ([]domain.DeckSummary, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.DeckSummary, 0, len(m.decks))
	for i := range m.decks {
		out = append(out, m.decks[i].Summary())
	}
	return out, nil
}

// Fetch implements store.DeckStore.
func (m *MockDeckStore) Fetch(ctx context.Context, ref string) (*domain.Deck, error) {
	m.mu.Lock()
	m.fetches = append(m.fetches, ref)
	m.mu.Unlock()

	if m.FetchFn != nil {
		return m.FetchFn(ctx, ref)
	}

	parsed, err := store.ParseDeckRef(ref)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.decks {
		d := m.decks[i]
		if (parsed.Exact && d.ID == parsed.ID) || (!parsed.Exact && strings.HasPrefix(d.ID.String(), parsed.Prefix)) {
			d.Cards = append([]domain.Card(nil), d.Cards...)
			return &d, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", store.ErrDeckNotFound, ref)
}

// Close implements store.DeckStore.
func (m *MockDeckStore) Close() error {
	m.mu.Lock()
	m.closes++
	m.mu.Unlock()

	if m.CloseFn != nil {
		return m.CloseFn()
	}
	return nil
}

// Decks returns copies of the saved decks.
func (m *MockDeckStore) Decks() []domain.Deck {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Deck(nil), m.decks...)
}

// OpenCount and CloseCount report connection lifecycle calls.
func (m *MockDeckStore) OpenCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opens
}

func (m *MockDeckStore) CloseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closes
}

// FetchRefs returns the refs passed to Fetch.
func (m *MockDeckStore) FetchRefs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.fetches...)
}
