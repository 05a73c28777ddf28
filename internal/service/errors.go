package service

import "errors"

// Warnings reported in GenerateResult.Warnings. They do not fail Generate.
var (
	// ErrNoCards indicates the generated text contained no parsable cards,
	// so nothing was saved.
	ErrNoCards = errors.New("generated text contains no cards")

	// ErrPersistence indicates the deck could not be saved. The generated
	// text is still returned.
	ErrPersistence = errors.New("failed to save deck")
)

// ErrGeneration wraps generator failures returned by Generate.
var ErrGeneration = errors.New("deck generation failed")
