// Package domain contains the core flashcard entities (decks, cards and
// their metadata) together with the validation rules that every layer of
// the application relies on. It is independent of any storage engine,
// generation provider or delivery mechanism.
package domain
