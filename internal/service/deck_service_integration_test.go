//go:build integration

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billdonner/obo-gen/internal/mocks"
	"github.com/billdonner/obo-gen/internal/platform/postgres"
	"github.com/billdonner/obo-gen/internal/store"
	"github.com/billdonner/obo-gen/internal/testdb"
)

func TestEndToEnd_Postgres(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	opener := postgres.NewOpener(testdb.GetTestDatabaseURL(), store.NoDelayRetryPolicy(3), nil)
	svc := NewDeckService(mocks.NewMockGeneratorWithText(planetsText), opener, nil)
	ctx := context.Background()

	res, err := svc.Generate(ctx, planetsRequest(true))
	require.NoError(t, err)
	require.Empty(t, res.Warnings)
	require.NotNil(t, res.DeckID)
	t.Cleanup(func() {
		_, _ = db.ExecContext(context.Background(), `DELETE FROM decks WHERE id = $1`, *res.DeckID)
	})

	list, err := svc.List(ctx)
	require.NoError(t, err)

	found := false
	for _, sum := range list {
		if sum.ID == *res.DeckID {
			found = true
			assert.Equal(t, "Planets", sum.Title)
			assert.Equal(t, 1, sum.CardCount)
		}
	}
	assert.True(t, found, "saved deck must be listed")

	text, err := svc.Export(ctx, res.DeckID.String())
	require.NoError(t, err)
	assert.Equal(t, planetsText, text)
}
