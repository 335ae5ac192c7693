package service

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/magicchef/magic-chef/backend/internal/models"
)

// RecipeInput is the validated payload for creating or updating a recipe.
type RecipeInput struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Language         string   `json:"language"`
	Servings         int      `json:"servings"`
	TotalTimeMinutes int      `json:"total_time_minutes"`
	Ingredients      []string `json:"ingredients"`
	Steps            []string `json:"steps"`
	Tags             []string `json:"tags"`
	IsPublic         bool     `json:"is_public"`
}

// SearchQuery matches recipes on any of the populated criteria.
type SearchQuery struct {
	Query      string
	Tag        string
	Ingredient string
}

type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

func (s *RecipeService) validate(input *RecipeInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return validationErr("title is required")
	}

	steps := make([]string, 0, len(input.Steps))
	for _, st := range input.Steps {
		if st = strings.TrimSpace(st); st != "" {
			steps = append(steps, st)
		}
	}
	input.Steps = steps
	if len(input.Steps) == 0 {
		return validationErr("at least one step is required")
	}

	if input.Language == "" {
		input.Language = "en"
	}
	if input.Servings <= 0 {
		input.Servings = 4
	}
	return nil
}

// Create persists a recipe with contiguous step positions and upserted tags.
func (s *RecipeService) Create(userID uuid.UUID, input RecipeInput) (*models.Recipe, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Title:            input.Title,
		Description:      input.Description,
		Language:         input.Language,
		Servings:         input.Servings,
		TotalTimeMinutes: input.TotalTimeMinutes,
		Ingredients:      models.JSONBStringArray(input.Ingredients),
		IsPublic:         input.IsPublic,
		UserID:           userID,
		Embedding:        GenerateEmbedding(input.Title + " " + input.Description),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		if err := s.writeSteps(tx, recipe.ID, input.Steps); err != nil {
			return err
		}
		tags, err := s.upsertTags(tx, input.Tags)
		if err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.load(recipe.ID)
}

// Get returns a recipe if the requester may read it. Private recipes are
// visible to their owner and to users the recipe was shared with.
func (s *RecipeService) Get(requesterID, id uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if !recipe.IsPublic && recipe.UserID != requesterID && !s.isSharedWith(requesterID, id) {
		return nil, ErrForbidden
	}
	return recipe, nil
}

// ListByOwner returns the user's recipes, newest first.
func (s *RecipeService) ListByOwner(userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.preloaded(s.db).
		Where("user_id = ?", userID).
		Order("created_at DESC, id").
		Find(&recipes).Error
	return recipes, err
}

// Search returns recipes visible to the requester (own, public, or shared
// with them) matching ANY of the populated criteria: exact tag, ingredient
// substring, free-text query.
// Ordering is deterministic for a fixed query: postgres ranks by embedding
// distance with an id tiebreak, sqlite orders by creation time and id.
func (s *RecipeService) Search(requesterID uuid.UUID, q SearchQuery) ([]models.Recipe, error) {
	query := s.preloaded(s.db).Where(
		"recipes.user_id = ? OR recipes.is_public = ? OR recipes.id IN (SELECT recipe_id FROM recipe_shares WHERE user_id = ?)",
		requesterID, true, requesterID,
	)

	postgres := s.db.Dialector.Name() == "postgres"

	var conds []string
	var args []interface{}

	if q.Tag != "" {
		conds = append(conds, "recipes.id IN (SELECT rt.recipe_id FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id WHERE t.name = ?)")
		args = append(args, q.Tag)
	}
	if q.Ingredient != "" {
		like := "%" + strings.ToLower(q.Ingredient) + "%"
		if postgres {
			conds = append(conds, "LOWER(recipes.ingredients::text) LIKE ?")
		} else {
			conds = append(conds, "LOWER(recipes.ingredients) LIKE ?")
		}
		args = append(args, like)
	}
	if q.Query != "" {
		like := "%" + strings.ToLower(q.Query) + "%"
		conds = append(conds, "(LOWER(recipes.title) LIKE ? OR LOWER(recipes.description) LIKE ?)")
		args = append(args, like, like)
	}

	if len(conds) > 0 {
		query = query.Where(strings.Join(conds, " OR "), args...)
	}

	if postgres && q.Query != "" {
		vec := GenerateEmbedding(q.Query)
		query = query.Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <-> ?, recipes.id", Vars: []interface{}{vec}},
		})
	} else {
		query = query.Order("recipes.created_at DESC, recipes.id")
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Update replaces the recipe's fields, steps and tags. Owner only.
func (s *RecipeService) Update(userID, id uuid.UUID, input RecipeInput) (*models.Recipe, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	recipe, err := s.ownedBy(userID, id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		recipe.Title = input.Title
		recipe.Description = input.Description
		recipe.Language = input.Language
		recipe.Servings = input.Servings
		recipe.TotalTimeMinutes = input.TotalTimeMinutes
		recipe.Ingredients = models.JSONBStringArray(input.Ingredients)
		recipe.IsPublic = input.IsPublic
		recipe.Embedding = GenerateEmbedding(input.Title + " " + input.Description)
		recipe.Steps = nil
		recipe.Tags = nil
		recipe.Images = nil

		if err := tx.Save(recipe).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeStep{}).Error; err != nil {
			return err
		}
		if err := s.writeSteps(tx, recipe.ID, input.Steps); err != nil {
			return err
		}
		tags, err := s.upsertTags(tx, input.Tags)
		if err != nil {
			return err
		}
		return tx.Model(recipe).Association("Tags").Replace(tags)
	})
	if err != nil {
		return nil, err
	}

	return s.load(id)
}

// Delete removes the recipe together with its steps, images, shares and tag
// associations. Shared tags survive. It returns the object keys of removed
// images so the caller can clean up the storage backend.
func (s *RecipeService) Delete(userID, id uuid.UUID) ([]string, error) {
	recipe, err := s.ownedBy(userID, id)
	if err != nil {
		return nil, err
	}

	var images []models.RecipeImage
	if err := s.db.Where("recipe_id = ?", id).Find(&images).Error; err != nil {
		return nil, err
	}

	var keys []string
	for _, img := range images {
		keys = append(keys, img.ObjectKey)
		if img.ThumbnailKey != "" {
			keys = append(keys, img.ThumbnailKey)
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeStep{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeShare{}).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
	if err != nil {
		return nil, err
	}

	return keys, nil
}

// Copy duplicates a readable recipe into the user's own collection, keeping
// a reference to the source.
func (s *RecipeService) Copy(userID, id uuid.UUID) (*models.Recipe, error) {
	src, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	input := RecipeInput{
		Title:            src.Title,
		Description:      src.Description,
		Language:         src.Language,
		Servings:         src.Servings,
		TotalTimeMinutes: src.TotalTimeMinutes,
		Ingredients:      []string(src.Ingredients),
		Steps:            stepTexts(src.Steps),
		Tags:             tagNames(src.Tags),
	}

	copied, err := s.Create(userID, input)
	if err != nil {
		return nil, err
	}

	originalID := src.ID
	if src.OriginalID != nil {
		originalID = *src.OriginalID
	}
	if err := s.db.Model(copied).Update("original_id", originalID).Error; err != nil {
		return nil, err
	}
	copied.OriginalID = &originalID

	return copied, nil
}

// AllTags returns every tag in use, sorted by name.
func (s *RecipeService) AllTags() ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.Order("name").Find(&tags).Error
	return tags, err
}

func (s *RecipeService) load(id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.preloaded(s.db).First(&recipe, "recipes.id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (s *RecipeService) ownedBy(userID, id uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != userID {
		return nil, ErrForbidden
	}
	return recipe, nil
}

func (s *RecipeService) preloaded(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Recipe{}).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Tags").
		Preload("Images")
}

// writeSteps inserts the steps renumbered 1..n so positions stay contiguous.
func (s *RecipeService) writeSteps(tx *gorm.DB, recipeID uuid.UUID, steps []string) error {
	for i, text := range steps {
		step := models.RecipeStep{
			RecipeID: recipeID,
			Position: i + 1,
			Text:     text,
		}
		if err := tx.Create(&step).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *RecipeService) upsertTags(tx *gorm.DB, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var tag models.Tag
		if err := tx.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func stepTexts(steps []models.RecipeStep) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.Text
	}
	return out
}

func tagNames(tags []models.Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.Name
	}
	return out
}
