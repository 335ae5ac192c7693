package service

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/magicchef/magic-chef/backend/internal/models"
)

// Share grants the user behind email read access to the owner's recipe.
// Sharing the same recipe with the same user twice is a no-op.
func (s *RecipeService) Share(ownerID, recipeID uuid.UUID, email string) (*models.RecipeShare, error) {
	if _, err := s.ownedBy(ownerID, recipeID); err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, validationErr("email is required")
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if user.ID == ownerID {
		return nil, validationErr("cannot share a recipe with its owner")
	}

	share := models.RecipeShare{RecipeID: recipeID, UserID: user.ID}
	if err := s.db.Where("recipe_id = ? AND user_id = ?", recipeID, user.ID).FirstOrCreate(&share).Error; err != nil {
		return nil, err
	}
	return &share, nil
}

// Unshare revokes a previously granted share. Owner only.
func (s *RecipeService) Unshare(ownerID, recipeID, userID uuid.UUID) error {
	if _, err := s.ownedBy(ownerID, recipeID); err != nil {
		return err
	}

	res := s.db.Where("recipe_id = ? AND user_id = ?", recipeID, userID).Delete(&models.RecipeShare{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Shares lists who a recipe has been shared with. Owner only.
func (s *RecipeService) Shares(ownerID, recipeID uuid.UUID) ([]models.RecipeShare, error) {
	if _, err := s.ownedBy(ownerID, recipeID); err != nil {
		return nil, err
	}

	var shares []models.RecipeShare
	err := s.db.Where("recipe_id = ?", recipeID).Order("created_at, id").Find(&shares).Error
	return shares, err
}

// SharedWithMe returns recipes other users shared with this user, newest
// share first.
func (s *RecipeService) SharedWithMe(userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.preloaded(s.db).
		Joins("JOIN recipe_shares rs ON rs.recipe_id = recipes.id").
		Where("rs.user_id = ?", userID).
		Order("rs.created_at DESC, recipes.id").
		Find(&recipes).Error
	return recipes, err
}

func (s *RecipeService) isSharedWith(userID, recipeID uuid.UUID) bool {
	if userID == uuid.Nil {
		return false
	}
	var count int64
	s.db.Model(&models.RecipeShare{}).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Count(&count)
	return count > 0
}
