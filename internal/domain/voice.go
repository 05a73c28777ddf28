package domain

import "strings"

// Voice is an optional narration hint attached to a deck. It is either
// present with non-empty text or absent; the zero value is absent.
type Voice struct {
	text  string
	valid bool
}

// SomeVoice returns a present voice hint. Blank text yields an absent hint.
func SomeVoice(text string) Voice {
	text = strings.TrimSpace(text)
	if text == "" {
		return Voice{}
	}
	return Voice{text: text, valid: true}
}

// NoVoice returns an absent voice hint.
func NoVoice() Voice {
	return Voice{}
}

// VoiceFromPtr converts a nullable column value into a Voice.
func VoiceFromPtr(text *string) Voice {
	if text == nil {
		return Voice{}
	}
	return SomeVoice(*text)
}

// Get returns the hint text and whether it is present.
func (v Voice) Get() (string, bool) {
	return v.text, v.valid
}

// IsPresent reports whether a hint was supplied.
func (v Voice) IsPresent() bool {
	return v.valid
}

// Ptr returns the hint as a nullable value, nil when absent.
func (v Voice) Ptr() *string {
	if !v.valid {
		return nil
	}
	text := v.text
	return &text
}

// String returns the hint text, or the empty string when absent.
func (v Voice) String() string {
	return v.text
}
