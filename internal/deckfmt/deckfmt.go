package deckfmt

import (
	"bufio"
	"strings"

	"github.com/billdonner/obo-gen/internal/domain"
)

// Line markers of the deck format.
const (
	TitleMarker     = "Title:"
	QuestionMarker  = "Q:"
	AnswerSeparator = "| A:"
	VoiceMarker     = "Voice:"
)

// Parse reads deck text into an in-memory deck. The result carries no age
// range; that is supplied by the caller as metadata.
//
// The first non-empty Title: line wins. A Q: line is split on the first
// "| A:" only, so answers may contain the separator. Cards with a blank
// side are dropped.
func Parse(text string) *domain.Deck {
	deck := &domain.Deck{Cards: []domain.Card{}}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), len(text)+1)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, TitleMarker):
			if deck.Title != "" {
				continue
			}
			deck.Title = strings.TrimSpace(strings.TrimPrefix(line, TitleMarker))

		case strings.HasPrefix(line, QuestionMarker):
			card, ok := parseCard(line, len(deck.Cards)+1)
			if ok {
				deck.Cards = append(deck.Cards, card)
			}

		case strings.HasPrefix(line, VoiceMarker):
			if !deck.Voice.IsPresent() {
				deck.Voice = domain.SomeVoice(strings.TrimPrefix(line, VoiceMarker))
			}
		}
	}

	if deck.Title == "" {
		deck.Title = domain.DefaultTitle
	}

	return deck
}

func parseCard(line string, position int) (domain.Card, bool) {
	question, answer, found := strings.Cut(line, AnswerSeparator)
	if !found {
		return domain.Card{}, false
	}

	card, err := domain.NewCard(position, strings.TrimPrefix(question, QuestionMarker), answer)
	if err != nil {
		return domain.Card{}, false
	}

	return card, true
}

// Serialize writes a deck in the canonical text format. The output always
// ends with a newline; the Voice trailer is written only when the deck has
// a voice hint.
func Serialize(deck *domain.Deck) string {
	var b strings.Builder

	b.WriteString(TitleMarker + " " + deck.Title + "\n\n")
	for _, c := range deck.Cards {
		b.WriteString(QuestionMarker + " " + c.Question + " " + AnswerSeparator + " " + c.Answer + "\n")
	}

	if voice, ok := deck.Voice.Get(); ok {
		b.WriteString("\n" + VoiceMarker + " " + voice + "\n")
	}

	return b.String()
}

// Normalize prepares generated text for output: trailing whitespace is
// collapsed to a single newline. When a voice hint is given, any Voice:
// lines in the text are dropped and the trailer for the hint is appended,
// so the output carries exactly the requested voice.
func Normalize(text string, voice domain.Voice) string {
	hint, ok := voice.Get()
	if !ok {
		return strings.TrimRight(text, " \t\r\n") + "\n"
	}

	return strings.TrimRight(stripVoiceLines(text), " \t\r\n") + "\n\n" + VoiceMarker + " " + hint + "\n"
}

func stripVoiceLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), VoiceMarker) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
