package deckfmt_test

import (
	"testing"

	"github.com/billdonner/obo-gen/internal/deckfmt"
	"github.com/billdonner/obo-gen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planetsText = "Title: Planets\n\nQ: What is the closest planet to the sun? | A: Mercury\n"

func TestParse_Planets(t *testing.T) {
	t.Parallel()

	deck := deckfmt.Parse(planetsText)

	assert.Equal(t, "Planets", deck.Title)
	require.Len(t, deck.Cards, 1)
	assert.Equal(t, domain.Card{
		Position: 1,
		Question: "What is the closest planet to the sun?",
		Answer:   "Mercury",
	}, deck.Cards[0])
	assert.False(t, deck.Voice.IsPresent())
}

func TestParse_SplitsOnFirstSeparator(t *testing.T) {
	t.Parallel()

	deck := deckfmt.Parse("Q: a | A: b | A: c")

	require.Len(t, deck.Cards, 1)
	assert.Equal(t, "a", deck.Cards[0].Question)
	assert.Equal(t, "b | A: c", deck.Cards[0].Answer)
}

func TestParse_RejectsEmptySides(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{"empty question", "Q:  | A: x"},
		{"empty answer", "Q: x | A: "},
		{"both empty", "Q: | A:"},
		{"no separator", "Q: what is this?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deck := deckfmt.Parse(tt.text)
			assert.Empty(t, deck.Cards)
		})
	}
}

func TestParse_DefaultTitle(t *testing.T) {
	t.Parallel()

	deck := deckfmt.Parse("Q: 1 + 1? | A: 2\n")
	assert.Equal(t, domain.DefaultTitle, deck.Title)

	deck = deckfmt.Parse("Title:   \nQ: 1 + 1? | A: 2\n")
	assert.Equal(t, domain.DefaultTitle, deck.Title)

	deck = deckfmt.Parse("")
	assert.Equal(t, domain.DefaultTitle, deck.Title)
	assert.Empty(t, deck.Cards)
}

func TestParse_FirstTitleWins(t *testing.T) {
	t.Parallel()

	deck := deckfmt.Parse("Title: Oceans\nQ: Largest ocean? | A: Pacific\nTitle: Rivers\n")
	assert.Equal(t, "Oceans", deck.Title)
}

func TestParse_IgnoresUnrelatedLines(t *testing.T) {
	t.Parallel()

	text := "Here is your deck!\n" +
		"Title: Animals\n" +
		"\n" +
		"Some chatter about Q: and | A: in the middle\n" +
		"   Q: What do cows drink? | A: Water   \n" +
		"A: orphan answer\n" +
		"question: not a card | A: nope\n" +
		"Q: What do bees make? | A: Honey\r\n"

	deck := deckfmt.Parse(text)

	assert.Equal(t, "Animals", deck.Title)
	require.Len(t, deck.Cards, 2)
	assert.Equal(t, "What do cows drink?", deck.Cards[0].Question)
	assert.Equal(t, "Water", deck.Cards[0].Answer)
	assert.Equal(t, 2, deck.Cards[1].Position)
	assert.Equal(t, "Honey", deck.Cards[1].Answer)
}

func TestParse_Voice(t *testing.T) {
	t.Parallel()

	deck := deckfmt.Parse("Title: Colors\n\nQ: Sky? | A: Blue\n\nVoice: gentle narrator\n")

	voice, ok := deck.Voice.Get()
	assert.True(t, ok)
	assert.Equal(t, "gentle narrator", voice)
	assert.Len(t, deck.Cards, 1)
	assert.Equal(t, "Colors", deck.Title)
}

func TestSerialize(t *testing.T) {
	t.Parallel()

	deck := &domain.Deck{
		Title: "Planets",
		Cards: []domain.Card{
			{Position: 1, Question: "What is the closest planet to the sun?", Answer: "Mercury"},
		},
	}
	assert.Equal(t, planetsText, deckfmt.Serialize(deck))

	deck.Voice = domain.SomeVoice("bright")
	assert.Equal(t, planetsText+"\nVoice: bright\n", deckfmt.Serialize(deck))
}

func TestSerialize_NoCards(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Title: Empty\n\n", deckfmt.Serialize(&domain.Deck{Title: "Empty"}))
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	decks := []*domain.Deck{
		{
			Title: "Dinosaurs",
			Cards: []domain.Card{
				{Position: 1, Question: "Which dinosaur had three horns?", Answer: "Triceratops"},
				{Position: 2, Question: "Did T. rex have big arms?", Answer: "No, tiny ones"},
				{Position: 3, Question: "What does | mean here?", Answer: "a pipe | A: inside the answer"},
			},
		},
		{
			Title: "Shapes",
			Voice: domain.SomeVoice("playful, sing-song"),
			Cards: []domain.Card{
				{Position: 1, Question: "How many sides does a triangle have?", Answer: "3"},
			},
		},
		{
			Title: "Nothing yet",
			Cards: []domain.Card{},
			Voice: domain.SomeVoice("quiet"),
		},
	}

	for _, want := range decks {
		t.Run(want.Title, func(t *testing.T) {
			got := deckfmt.Parse(deckfmt.Serialize(want))

			assert.Equal(t, want.Title, got.Title)
			assert.Equal(t, want.Cards, got.Cards)
			assert.Equal(t, want.Voice, got.Voice)
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, planetsText, deckfmt.Normalize(planetsText, domain.NoVoice()))
	assert.Equal(t, planetsText, deckfmt.Normalize("Title: Planets\n\nQ: What is the closest planet to the sun? | A: Mercury", domain.NoVoice()))
	assert.Equal(t, planetsText, deckfmt.Normalize(planetsText+"\n\n  \n", domain.NoVoice()))

	withVoice := deckfmt.Normalize(planetsText, domain.SomeVoice("calm"))
	assert.Equal(t, planetsText+"\nVoice: calm\n", withVoice)

	// The requested voice replaces one written by the provider.
	assert.Equal(t, planetsText+"\nVoice: other\n", deckfmt.Normalize(withVoice, domain.SomeVoice("other")))
	assert.Equal(t, withVoice, deckfmt.Normalize(withVoice, domain.SomeVoice("calm")))

	// Without a requested voice the provider's line is kept.
	assert.Equal(t, withVoice, deckfmt.Normalize(withVoice, domain.NoVoice()))
}
