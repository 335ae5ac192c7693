package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/magicchef/magic-chef/backend/internal/models"
	"github.com/magicchef/magic-chef/backend/internal/provider"
)

// TranslationService produces a translated copy of a recipe. The source
// recipe is never touched: a provider failure leaves the database unchanged.
type TranslationService struct {
	recipes    *RecipeService
	translator provider.Translator
}

func NewTranslationService(recipes *RecipeService, translator provider.Translator) *TranslationService {
	return &TranslationService{
		recipes:    recipes,
		translator: translator,
	}
}

// Translate loads the recipe, translates its text fields in one batch and
// persists the result as a new recipe in the target language with a
// reference back to the source.
func (s *TranslationService) Translate(ctx context.Context, userID, recipeID uuid.UUID, targetLang string) (*models.Recipe, error) {
	targetLang = strings.ToLower(strings.TrimSpace(targetLang))
	if targetLang == "" {
		return nil, validationErr("target_lang is required")
	}
	if !s.translator.Supports(targetLang) {
		return nil, ErrUnsupportedLanguage
	}

	src, err := s.recipes.Get(userID, recipeID)
	if err != nil {
		return nil, err
	}

	if src.Language == targetLang {
		return nil, validationErr("recipe is already in the target language")
	}

	// One flat batch: title, description, ingredients, then steps.
	texts := []string{src.Title, src.Description}
	texts = append(texts, []string(src.Ingredients)...)
	steps := stepTexts(src.Steps)
	texts = append(texts, steps...)

	translated, err := s.translator.Translate(ctx, texts, targetLang)
	if err != nil {
		return nil, providerErr("translation", err)
	}
	if len(translated) != len(texts) {
		return nil, providerErr("translation", fmt.Errorf("provider returned %d segments for %d inputs", len(translated), len(texts)))
	}

	ingredientCount := len(src.Ingredients)
	input := RecipeInput{
		Title:            translated[0],
		Description:      translated[1],
		Language:         targetLang,
		Servings:         src.Servings,
		TotalTimeMinutes: src.TotalTimeMinutes,
		Ingredients:      translated[2 : 2+ingredientCount],
		Steps:            translated[2+ingredientCount:],
		Tags:             tagNames(src.Tags), // tags stay untranslated
		IsPublic:         src.IsPublic,
	}

	copied, err := s.recipes.Create(userID, input)
	if err != nil {
		return nil, err
	}

	originalID := src.ID
	if src.OriginalID != nil {
		originalID = *src.OriginalID
	}
	if err := s.recipes.db.Model(copied).Update("original_id", originalID).Error; err != nil {
		return nil, err
	}
	copied.OriginalID = &originalID

	return copied, nil
}
