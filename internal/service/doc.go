// Package service implements the deck operations behind the CLI: generate
// a deck (and optionally save it), list saved decks and export one as text.
//
// DeckService depends only on the generation.Generator and store.Opener
// abstractions, so tests run it against mocks or an SQLite store.
package service
