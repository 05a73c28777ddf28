package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billdonner/obo-gen/internal/domain"
	"github.com/billdonner/obo-gen/internal/generation"
	"github.com/billdonner/obo-gen/internal/mocks"
	"github.com/billdonner/obo-gen/internal/platform/sqlite"
	"github.com/billdonner/obo-gen/internal/store"
)

const planetsText = "Title: Planets\n\nQ: What is the closest planet to the sun? | A: Mercury\n"

func planetsRequest(save bool) GenerateRequest {
	return GenerateRequest{Topic: "Planets", AgeRange: "4-6", Count: 1, Save: save}
}

func TestGenerate_SavesDeck(t *testing.T) {
	gen := mocks.NewMockGeneratorWithText(planetsText)
	st := mocks.NewMockDeckStore()
	svc := NewDeckService(gen, st.Opener(), nil)

	res, err := svc.Generate(context.Background(), planetsRequest(true))
	require.NoError(t, err)

	assert.Empty(t, res.Warnings)
	assert.Equal(t, planetsText, res.Text)
	require.NotNil(t, res.DeckID)
	require.NotNil(t, res.Deck)
	assert.Equal(t, "Planets", res.Deck.Title)
	assert.Equal(t, "4-6", res.Deck.AgeRange)

	saved := st.Decks()
	require.Len(t, saved, 1)
	assert.Equal(t, *res.DeckID, saved[0].ID)
	assert.Equal(t, "Mercury", saved[0].Cards[0].Answer)

	assert.Equal(t, generation.Request{Topic: "Planets", AgeRange: "4-6", Count: 1}, gen.LastRequest())
	assert.Equal(t, 1, st.OpenCount())
	assert.Equal(t, 1, st.CloseCount())
}

func TestGenerate_VoiceIsAppendedAndStored(t *testing.T) {
	gen := mocks.NewMockGeneratorWithText("Title: Planets\nQ: Red planet? | A: Mars")
	st := mocks.NewMockDeckStore()
	svc := NewDeckService(gen, st.Opener(), nil)

	req := planetsRequest(true)
	req.Voice = domain.SomeVoice("calm narrator")
	res, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Title: Planets\nQ: Red planet? | A: Mars\n\nVoice: calm narrator\n", res.Text)
	require.Len(t, st.Decks(), 1)
	assert.Equal(t, "calm narrator", st.Decks()[0].Voice.String())
}

func TestGenerate_RequestedVoiceReplacesProviderVoice(t *testing.T) {
	gen := mocks.NewMockGeneratorWithText("Title: Planets\n\nQ: Red planet? | A: Mars\n\nVoice: robot\n")
	st := mocks.NewMockDeckStore()
	svc := NewDeckService(gen, st.Opener(), nil)
	ctx := context.Background()

	req := planetsRequest(true)
	req.Voice = domain.SomeVoice("calm narrator")
	res, err := svc.Generate(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, res.DeckID)

	want := "Title: Planets\n\nQ: Red planet? | A: Mars\n\nVoice: calm narrator\n"
	assert.Equal(t, want, res.Text)
	assert.Equal(t, "calm narrator", res.Deck.Voice.String())

	exported, err := svc.Export(ctx, res.DeckID.String())
	require.NoError(t, err)
	assert.Equal(t, res.Text, exported)
}

func TestGenerate_ProviderVoiceKeptWithoutRequest(t *testing.T) {
	text := "Title: Planets\n\nQ: Red planet? | A: Mars\n\nVoice: robot\n"
	st := mocks.NewMockDeckStore()
	svc := NewDeckService(mocks.NewMockGeneratorWithText(text), st.Opener(), nil)
	ctx := context.Background()

	res, err := svc.Generate(ctx, planetsRequest(true))
	require.NoError(t, err)
	assert.Equal(t, text, res.Text)

	exported, err := svc.Export(ctx, res.DeckID.String())
	require.NoError(t, err)
	assert.Equal(t, res.Text, exported)
}

func TestGenerate_NoSave(t *testing.T) {
	st := mocks.NewMockDeckStore()
	svc := NewDeckService(mocks.NewMockGeneratorWithText(planetsText), st.Opener(), nil)

	res, err := svc.Generate(context.Background(), planetsRequest(false))
	require.NoError(t, err)

	assert.Empty(t, res.Warnings)
	assert.Nil(t, res.DeckID)
	assert.NotNil(t, res.Deck)
	assert.Zero(t, st.OpenCount())
}

func TestGenerate_NoCardsWarns(t *testing.T) {
	st := mocks.NewMockDeckStore()
	svc := NewDeckService(mocks.NewMockGeneratorWithText("Title: Nothing here\nJust some prose."), st.Opener(), nil)

	res, err := svc.Generate(context.Background(), planetsRequest(true))
	require.NoError(t, err)

	require.Len(t, res.Warnings, 1)
	assert.ErrorIs(t, res.Warnings[0], ErrNoCards)
	assert.Equal(t, "Title: Nothing here\nJust some prose.\n", res.Text)
	assert.Nil(t, res.Deck)
	assert.Nil(t, res.DeckID)
	assert.Zero(t, st.OpenCount())
}

func TestGenerate_GeneratorErrorIsFatal(t *testing.T) {
	cause := &generation.ProviderError{StatusCode: 429, Message: "slow down"}
	st := mocks.NewMockDeckStore()
	svc := NewDeckService(mocks.NewMockGeneratorWithError(cause), st.Opener(), nil)

	res, err := svc.Generate(context.Background(), planetsRequest(true))
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.ErrorIs(t, err, generation.ErrProviderStatus)
	assert.Zero(t, st.OpenCount())
}

func TestGenerate_NilGenerator(t *testing.T) {
	svc := NewDeckService(nil, mocks.NewMockDeckStore().Opener(), nil)
	_, err := svc.Generate(context.Background(), planetsRequest(true))
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestGenerate_PersistenceFailuresWarn(t *testing.T) {
	t.Run("open fails", func(t *testing.T) {
		st := mocks.NewMockDeckStore()
		st.OpenErr = store.ErrConnectionFailed
		svc := NewDeckService(mocks.NewMockGeneratorWithText(planetsText), st.Opener(), nil)

		res, err := svc.Generate(context.Background(), planetsRequest(true))
		require.NoError(t, err)
		assert.Equal(t, planetsText, res.Text)
		assert.Nil(t, res.DeckID)
		require.Len(t, res.Warnings, 1)
		assert.ErrorIs(t, res.Warnings[0], ErrPersistence)
		assert.ErrorIs(t, res.Warnings[0], store.ErrConnectionFailed)
	})

	t.Run("save fails and store is closed", func(t *testing.T) {
		st := mocks.NewMockDeckStore()
		st.SaveFn = func(ctx context.Context, deck *domain.Deck) (uuid.UUID, error) {
			return uuid.Nil, errors.New("disk full")
		}
		svc := NewDeckService(mocks.NewMockGeneratorWithText(planetsText), st.Opener(), nil)

		res, err := svc.Generate(context.Background(), planetsRequest(true))
		require.NoError(t, err)
		require.Len(t, res.Warnings, 1)
		assert.ErrorIs(t, res.Warnings[0], ErrPersistence)
		assert.Equal(t, 1, st.CloseCount())
	})

	t.Run("missing age range", func(t *testing.T) {
		st := mocks.NewMockDeckStore()
		svc := NewDeckService(mocks.NewMockGeneratorWithText(planetsText), st.Opener(), nil)

		req := planetsRequest(true)
		req.AgeRange = ""
		res, err := svc.Generate(context.Background(), req)
		require.NoError(t, err)
		require.Len(t, res.Warnings, 1)
		assert.ErrorIs(t, res.Warnings[0], ErrPersistence)
		assert.Empty(t, st.Decks())
	})
}

func TestListAndExport(t *testing.T) {
	st := mocks.NewMockDeckStore()
	svc := NewDeckService(mocks.NewMockGeneratorWithText(planetsText), st.Opener(), nil)
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	res, err := svc.Generate(ctx, planetsRequest(true))
	require.NoError(t, err)

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].CardCount)

	text, err := svc.Export(ctx, list[0].ShortID())
	require.NoError(t, err)
	assert.Equal(t, planetsText, text)
	assert.Equal(t, []string{res.DeckID.String()[:8]}, st.FetchRefs())

	_, err = svc.Export(ctx, "ffffffff")
	assert.ErrorIs(t, err, store.ErrDeckNotFound)
}

func TestList_ErrorsAreFatal(t *testing.T) {
	st := mocks.NewMockDeckStore()
	st.ListFn = func(ctx context.Context) ([]domain.DeckSummary, error) {
		return nil, store.ErrConnectionFailed
	}
	svc := NewDeckService(nil, st.Opener(), nil)

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, store.ErrConnectionFailed)
	assert.Equal(t, 1, st.CloseCount())
}

func TestCloseErrorSurfacesWhenOperationSucceeds(t *testing.T) {
	st := mocks.NewMockDeckStore()
	st.CloseFn = func() error { return errors.New("close failed") }
	svc := NewDeckService(nil, st.Opener(), nil)

	_, err := svc.List(context.Background())
	assert.EqualError(t, err, "list decks: close failed")
}

func TestEndToEnd_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decks.db")
	opener := sqlite.NewOpener(path, store.NoDelayRetryPolicy(1), nil)
	svc := NewDeckService(mocks.NewMockGeneratorWithText(planetsText), opener, nil)
	ctx := context.Background()

	res, err := svc.Generate(ctx, planetsRequest(true))
	require.NoError(t, err)
	require.Empty(t, res.Warnings)
	require.NotNil(t, res.DeckID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, *res.DeckID, list[0].ID)
	assert.Equal(t, "Planets", list[0].Title)
	assert.Equal(t, 1, list[0].CardCount)

	text, err := svc.Export(ctx, res.DeckID.String())
	require.NoError(t, err)
	assert.Equal(t, planetsText, text)

	text, err = svc.Export(ctx, list[0].ShortID())
	require.NoError(t, err)
	assert.Equal(t, planetsText, text)
}

func TestNewDeckService_NilOpenerPanics(t *testing.T) {
	assert.Panics(t, func() { NewDeckService(nil, nil, nil) })
}
