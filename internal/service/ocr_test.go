package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicchef/magic-chef/backend/internal/models"
	"github.com/magicchef/magic-chef/backend/internal/testhelpers"
)

const scannedRecipe = `Grandma's Apple Pie

- 6 apples
- 200g flour
- 100g butter

Peel and slice the apples.
Prepare the dough and line the tin.
Bake at 180C for 45 minutes.`

func setupOCR(t *testing.T) (*OCRService, *fakeOCREngine, *memoryDraftStore, *RecipeService) {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	recipes := NewRecipeService(db)
	engine := &fakeOCREngine{text: scannedRecipe}
	drafts := newMemoryDraftStore()
	return NewOCRService(recipes, engine, drafts, 16<<20), engine, drafts, recipes
}

func TestExtractParsesDraft(t *testing.T) {
	svc, engine, _, recipes := setupOCR(t)
	userID := createTestUser(t, recipes.db, "cook@example.com")

	draft, err := svc.Extract(context.Background(), userID, "pie.jpg", 1024, []byte("fake image"))
	require.NoError(t, err)
	assert.Equal(t, 1, engine.calls)

	assert.Equal(t, "Grandma's Apple Pie", draft.Title)
	assert.Equal(t, []string{"6 apples", "200g flour", "100g butter"}, draft.Ingredients)
	require.Len(t, draft.Steps, 3)
	assert.Equal(t, "Peel and slice the apples.", draft.Steps[0])
	assert.Equal(t, userID.String(), draft.UserID)
	assert.NotEmpty(t, draft.ID)
}

func TestExtractRejectsOversizedUploadBeforeEngineCall(t *testing.T) {
	svc, engine, _, recipes := setupOCR(t)
	userID := createTestUser(t, recipes.db, "cook@example.com")

	_, err := svc.Extract(context.Background(), userID, "pie.jpg", 17<<20, []byte("fake image"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, engine.calls)
}

func TestExtractRejectsUnsupportedExtensionBeforeEngineCall(t *testing.T) {
	svc, engine, _, recipes := setupOCR(t)
	userID := createTestUser(t, recipes.db, "cook@example.com")

	_, err := svc.Extract(context.Background(), userID, "recipe.txt", 1024, []byte("plain text"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, engine.calls)
}

func TestExtractFailsOnEmptyText(t *testing.T) {
	svc, engine, _, recipes := setupOCR(t)
	engine.text = "   \n  "
	userID := createTestUser(t, recipes.db, "cook@example.com")

	_, err := svc.Extract(context.Background(), userID, "pie.jpg", 1024, []byte("fake image"))
	var perr *ProviderError
	assert.ErrorAs(t, err, &perr)
}

func TestDraftOwnership(t *testing.T) {
	svc, _, _, recipes := setupOCR(t)
	owner := createTestUser(t, recipes.db, "owner@example.com")
	other := createTestUser(t, recipes.db, "other@example.com")

	draft, err := svc.Extract(context.Background(), owner, "pie.jpg", 1024, []byte("fake image"))
	require.NoError(t, err)

	_, err = svc.Draft(context.Background(), other, draft.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Discard(context.Background(), other, draft.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Draft(context.Background(), owner, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)
}

func TestConfirmCreatesRecipeAndDeletesDraft(t *testing.T) {
	svc, _, drafts, recipes := setupOCR(t)
	userID := createTestUser(t, recipes.db, "cook@example.com")

	draft, err := svc.Extract(context.Background(), userID, "pie.jpg", 1024, []byte("fake image"))
	require.NoError(t, err)

	recipe, err := svc.Confirm(context.Background(), userID, draft.ID, RecipeInput{})
	require.NoError(t, err)

	assert.Equal(t, "Grandma's Apple Pie", recipe.Title)
	assert.Len(t, recipe.Ingredients, 3)
	assert.Len(t, recipe.Steps, 3)

	_, err = drafts.GetDraft(context.Background(), draft.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConfirmAppliesOverrides(t *testing.T) {
	svc, _, _, recipes := setupOCR(t)
	userID := createTestUser(t, recipes.db, "cook@example.com")

	draft, err := svc.Extract(context.Background(), userID, "pie.jpg", 1024, []byte("fake image"))
	require.NoError(t, err)

	recipe, err := svc.Confirm(context.Background(), userID, draft.ID, RecipeInput{
		Title:    "Apple Pie (family recipe)",
		Servings: 8,
	})
	require.NoError(t, err)

	assert.Equal(t, "Apple Pie (family recipe)", recipe.Title)
	assert.Equal(t, 8, recipe.Servings)
	// Unset override fields keep the draft's values.
	assert.Len(t, recipe.Steps, 3)
}

func TestConfirmInvalidDraftPersistsNothing(t *testing.T) {
	svc, _, _, recipes := setupOCR(t)
	userID := createTestUser(t, recipes.db, "cook@example.com")

	_, err := svc.Confirm(context.Background(), userID, "missing-draft", RecipeInput{})
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	recipes.db.Model(&models.Recipe{}).Count(&count)
	assert.Zero(t, count)
}
