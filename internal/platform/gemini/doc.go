// Package gemini implements generation.Generator on Google's Gemini API
// through the google.golang.org/genai client.
//
// GeminiGenerator sends one GenerateContent request per deck, bounded by the
// configured timeout, and translates provider failures into the errors of
// the generation package. It does not retry.
package gemini
