package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/magicchef/magic-chef/backend/internal/models"
	"github.com/magicchef/magic-chef/backend/internal/provider"
)

// GenerationService turns an ingredient list into a persisted recipe via the
// configured AI provider. Nothing is persisted unless the provider response
// parses into a complete recipe.
type GenerationService struct {
	recipes   *RecipeService
	generator provider.RecipeGenerator
}

func NewGenerationService(recipes *RecipeService, generator provider.RecipeGenerator) *GenerationService {
	return &GenerationService{
		recipes:   recipes,
		generator: generator,
	}
}

// Generate calls the provider and persists the parsed result. The requested
// serving count always wins over whatever the provider answered.
func (s *GenerationService) Generate(ctx context.Context, userID uuid.UUID, ingredients []string, servings int, diet string) (*models.Recipe, error) {
	if len(ingredients) == 0 {
		return nil, validationErr("at least one ingredient is required")
	}

	generated, err := s.generator.GenerateRecipe(ctx, provider.GenerationRequest{
		Ingredients: ingredients,
		Servings:    servings,
		Diet:        diet,
	})
	if err != nil {
		return nil, providerErr("recipe generation", err)
	}

	if generated.Title == "" || len(generated.Steps) == 0 {
		return nil, providerErr("recipe generation", errors.New("provider returned an incomplete recipe"))
	}

	if servings > 0 {
		generated.Servings = servings
	}

	genIngredients := generated.Ingredients
	if len(genIngredients) == 0 {
		genIngredients = ingredients
	}

	tags := generated.Tags
	if diet != "" {
		tags = append(tags, diet)
	}

	return s.recipes.Create(userID, RecipeInput{
		Title:            generated.Title,
		Description:      generated.Description,
		Servings:         generated.Servings,
		TotalTimeMinutes: generated.TotalTimeMinutes,
		Ingredients:      genIngredients,
		Steps:            generated.Steps,
		Tags:             tags,
	})
}
