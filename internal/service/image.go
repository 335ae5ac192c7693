package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"time"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
	"gorm.io/gorm"

	"github.com/magicchef/magic-chef/backend/internal/models"
	"github.com/magicchef/magic-chef/backend/internal/provider"
)

const thumbnailSize = 300

// ImageService stores recipe photos and their thumbnails.
type ImageService struct {
	db       *gorm.DB
	recipes  *RecipeService
	store    provider.ObjectStore
	maxBytes int64
}

func NewImageService(db *gorm.DB, recipes *RecipeService, store provider.ObjectStore, maxBytes int64) *ImageService {
	return &ImageService{
		db:       db,
		recipes:  recipes,
		store:    store,
		maxBytes: maxBytes,
	}
}

// Attach validates and stores an uploaded photo for a recipe the user owns.
// The original is kept as-is; a JPEG thumbnail is generated alongside it.
func (s *ImageService) Attach(ctx context.Context, userID, recipeID uuid.UUID, filename string, size int64, data []byte, altText string) (*models.RecipeImage, error) {
	if err := ValidateUpload(filename, size, s.maxBytes, imageExtensions); err != nil {
		return nil, err
	}

	if _, err := s.recipes.ownedBy(userID, recipeID); err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, validationErr("file is not a decodable image")
	}

	thumb := resize.Thumbnail(thumbnailSize, thumbnailSize, src, resize.Lanczos3)
	var thumbBuf bytes.Buffer
	if err := jpeg.Encode(&thumbBuf, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	imageID := uuid.New()
	key := fmt.Sprintf("recipes/%s/%s%s", recipeID, imageID, extOf(filename))
	thumbKey := fmt.Sprintf("recipes/%s/%s_thumb.jpg", recipeID, imageID)

	if _, err := s.store.Put(ctx, key, data, contentTypeFor(filename)); err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}
	if _, err := s.store.Put(ctx, thumbKey, thumbBuf.Bytes(), "image/jpeg"); err != nil {
		_ = s.store.Delete(ctx, key)
		return nil, fmt.Errorf("failed to store thumbnail: %w", err)
	}

	img := &models.RecipeImage{
		ID:           imageID,
		RecipeID:     recipeID,
		ObjectKey:    key,
		ThumbnailKey: thumbKey,
		AltText:      altText,
	}
	if err := s.db.Create(img).Error; err != nil {
		_ = s.store.Delete(ctx, key)
		_ = s.store.Delete(ctx, thumbKey)
		return nil, err
	}

	return img, nil
}

// Remove deletes a photo from a recipe the user owns, database row first so a
// storage failure never leaves a dangling reference.
func (s *ImageService) Remove(ctx context.Context, userID, recipeID, imageID uuid.UUID) error {
	if _, err := s.recipes.ownedBy(userID, recipeID); err != nil {
		return err
	}

	var img models.RecipeImage
	if err := s.db.First(&img, "id = ? AND recipe_id = ?", imageID, recipeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	if err := s.db.Delete(&img).Error; err != nil {
		return err
	}

	_ = s.store.Delete(ctx, img.ObjectKey)
	if img.ThumbnailKey != "" {
		_ = s.store.Delete(ctx, img.ThumbnailKey)
	}
	return nil
}

// urlSigner is implemented by storage backends whose objects are not publicly
// reachable and need a time-limited URL.
type urlSigner interface {
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

const signedURLExpiry = 15 * time.Minute

// URL returns a download URL for an image on a recipe the user may read:
// presigned for private backends, the static path otherwise.
func (s *ImageService) URL(ctx context.Context, userID, recipeID, imageID uuid.UUID) (string, error) {
	if _, err := s.recipes.Get(userID, recipeID); err != nil {
		return "", err
	}

	var img models.RecipeImage
	if err := s.db.First(&img, "id = ? AND recipe_id = ?", imageID, recipeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", ErrNotFound
		}
		return "", err
	}

	if signer, ok := s.store.(urlSigner); ok {
		return signer.SignedURL(ctx, img.ObjectKey, signedURLExpiry)
	}
	return "/uploads/" + img.ObjectKey, nil
}

// CleanupKeys best-effort deletes storage objects left behind by a recipe
// deletion.
func (s *ImageService) CleanupKeys(ctx context.Context, keys []string) {
	for _, key := range keys {
		_ = s.store.Delete(ctx, key)
	}
}

func extOf(filename string) string {
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			return filename[i:]
		}
	}
	return ""
}

func contentTypeFor(filename string) string {
	switch extOf(filename) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
