package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/magicchef/magic-chef/backend/internal/models"
	"github.com/magicchef/magic-chef/backend/internal/provider"
)

// OCRService digitizes scanned recipes. The extracted text is parsed into a
// draft the user reviews before anything reaches the recipes table.
type OCRService struct {
	recipes  *RecipeService
	engine   provider.OCREngine
	drafts   DraftStore
	maxBytes int64
}

func NewOCRService(recipes *RecipeService, engine provider.OCREngine, drafts DraftStore, maxBytes int64) *OCRService {
	return &OCRService{
		recipes:  recipes,
		engine:   engine,
		drafts:   drafts,
		maxBytes: maxBytes,
	}
}

// Extract validates the upload, runs OCR and saves the parsed result as a
// draft. Invalid uploads are rejected before the engine is ever called.
func (s *OCRService) Extract(ctx context.Context, userID uuid.UUID, filename string, size int64, data []byte) (*RecipeDraft, error) {
	if err := ValidateUpload(filename, size, s.maxBytes, ocrExtensions); err != nil {
		return nil, err
	}

	text, err := s.engine.ExtractText(ctx, data, filename)
	if err != nil {
		return nil, providerErr("text extraction", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, providerErr("text extraction", errors.New("no text found in document"))
	}

	draft := parseDraft(text)
	draft.UserID = userID.String()

	if err := s.drafts.SaveDraft(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Draft returns one of the user's pending drafts.
func (s *OCRService) Draft(ctx context.Context, userID uuid.UUID, draftID string) (*RecipeDraft, error) {
	draft, err := s.drafts.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.UserID != userID.String() {
		return nil, ErrForbidden
	}
	return draft, nil
}

// Discard deletes a pending draft.
func (s *OCRService) Discard(ctx context.Context, userID uuid.UUID, draftID string) error {
	if _, err := s.Draft(ctx, userID, draftID); err != nil {
		return err
	}
	return s.drafts.DeleteDraft(ctx, draftID)
}

// Confirm turns a reviewed draft into a recipe. Fields in the override
// replace the draft's parsed values; empty override fields keep them. The
// draft is deleted once the recipe is persisted.
func (s *OCRService) Confirm(ctx context.Context, userID uuid.UUID, draftID string, override RecipeInput) (*models.Recipe, error) {
	draft, err := s.Draft(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}

	input := override
	if strings.TrimSpace(input.Title) == "" {
		input.Title = draft.Title
	}
	if len(input.Ingredients) == 0 {
		input.Ingredients = draft.Ingredients
	}
	if len(input.Steps) == 0 {
		input.Steps = draft.Steps
	}

	recipe, err := s.recipes.Create(userID, input)
	if err != nil {
		return nil, err
	}

	if err := s.drafts.DeleteDraft(ctx, draftID); err != nil {
		// The recipe exists; an orphaned draft just expires with its TTL.
		return recipe, nil
	}
	return recipe, nil
}

// parseDraft applies a simple heuristic to OCR output: the first non-empty
// line is the title, lines that look like list items become ingredients,
// everything else becomes steps.
func parseDraft(text string) *RecipeDraft {
	draft := &RecipeDraft{Text: text}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimPrefix(line, "# ")

		if draft.Title == "" {
			draft.Title = line
			continue
		}
		if marker := listItem(line); marker != "" {
			draft.Ingredients = append(draft.Ingredients, marker)
			continue
		}
		draft.Steps = append(draft.Steps, line)
	}

	return draft
}

// listItem strips a leading bullet and returns the item text, or "" when the
// line is not a list item.
func listItem(line string) string {
	for _, prefix := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return ""
}
