// Package deckfmt reads and writes the plain-text flashcard deck format:
//
//	Title: <topic>
//
//	Q: <question 1> | A: <answer 1>
//	Q: <question 2> | A: <answer 2>
//
//	Voice: <voice hint>
//
// The Voice trailer is optional. Parse is total: malformed lines are
// skipped, never reported. Serialize is its exact inverse for decks whose
// text carries no format markers.
package deckfmt
