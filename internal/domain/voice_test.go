package domain

import "testing"

func TestVoice(t *testing.T) {
	t.Parallel()

	if NoVoice().IsPresent() {
		t.Error("NoVoice must be absent")
	}

	if SomeVoice("   ").IsPresent() {
		t.Error("blank voice must be absent")
	}

	v := SomeVoice(" warm and slow ")
	text, ok := v.Get()
	if !ok || text != "warm and slow" {
		t.Errorf("Expected present trimmed voice, got %q %v", text, ok)
	}

	if p := v.Ptr(); p == nil || *p != "warm and slow" {
		t.Errorf("Expected pointer to voice text, got %v", p)
	}

	if NoVoice().Ptr() != nil {
		t.Error("absent voice must convert to nil")
	}

	if VoiceFromPtr(nil) != NoVoice() {
		t.Error("nil must convert to absent voice")
	}

	s := "cheerful"
	if VoiceFromPtr(&s) != SomeVoice("cheerful") {
		t.Error("pointer must round-trip")
	}
}
