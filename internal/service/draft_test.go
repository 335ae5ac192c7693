package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicchef/magic-chef/backend/internal/testhelpers"
)

func TestRedisDraftStoreRoundtrip(t *testing.T) {
	rdb := testhelpers.SetupTestRedis(t)
	store := NewRedisDraftStore(rdb)
	ctx := context.Background()

	draft := &RecipeDraft{
		UserID:      "user-1",
		Title:       "Scanned Pie",
		Ingredients: []string{"6 apples"},
		Steps:       []string{"Bake it"},
	}

	require.NoError(t, store.SaveDraft(ctx, draft))
	assert.NotEmpty(t, draft.ID)
	assert.False(t, draft.CreatedAt.IsZero())

	got, err := store.GetDraft(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.Title, got.Title)
	assert.Equal(t, draft.Ingredients, got.Ingredients)

	// Drafts expire on their own if never confirmed.
	ttl, err := rdb.TTL(ctx, "recipe:draft:"+draft.ID).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Hour)

	require.NoError(t, store.DeleteDraft(ctx, draft.ID))
	_, err = store.GetDraft(ctx, draft.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisDraftStoreMissingDraft(t *testing.T) {
	rdb := testhelpers.SetupTestRedis(t)
	store := NewRedisDraftStore(rdb)

	_, err := store.GetDraft(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
