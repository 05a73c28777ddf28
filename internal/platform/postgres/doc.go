// Package postgres provides the PostgreSQL implementation of store.DeckStore.
// It handles connecting with retry, schema migrations (embedded goose
// files), query execution and mapping between domain decks and rows.
package postgres
