// Package generation defines the boundary between the deck service and the
// external language-model provider that writes deck text.
//
// A Generator turns a Request (topic, age range, card count) into raw deck
// text in the Title/Q/A line format. The prompt that asks the provider for
// that format is rendered by BuildPrompt. Provider implementations live under
// internal/platform (gemini) and report failures with the errors in this
// package so callers can tell an unreachable provider from a bad answer.
package generation
