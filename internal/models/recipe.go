package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

type Recipe struct {
	ID               uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	DeletedAt        gorm.DeletedAt   `gorm:"index" json:"-"`
	Title            string           `gorm:"size:200;not null;index" json:"title"`
	Description      string           `gorm:"type:text" json:"description"`
	Language         string           `gorm:"size:5;not null;default:'en'" json:"language"`
	Servings         int              `gorm:"not null;default:4" json:"servings"`
	TotalTimeMinutes int              `json:"total_time_minutes"`
	Ingredients      JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	IsPublic         bool             `gorm:"not null;default:false" json:"is_public"`
	OriginalID       *uuid.UUID       `gorm:"type:varchar(36);index" json:"original_id,omitempty"`
	Embedding        pgvector.Vector  `gorm:"type:vector(4)" json:"-"`
	UserID           uuid.UUID        `gorm:"type:varchar(36);not null;index" json:"user_id"`

	Steps  []RecipeStep  `gorm:"constraint:OnDelete:CASCADE" json:"steps"`
	Tags   []Tag         `gorm:"many2many:recipe_tags" json:"tags"`
	Images []RecipeImage `gorm:"constraint:OnDelete:CASCADE" json:"images"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeStep is a single ordered instruction. Position is 1-based and kept
// contiguous per recipe by the recipe service.
type RecipeStep struct {
	ID       uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID uuid.UUID `gorm:"type:varchar(36);not null;index:idx_recipe_steps_recipe_position,unique" json:"recipe_id"`
	Position int       `gorm:"not null;index:idx_recipe_steps_recipe_position,unique" json:"position"`
	Text     string    `gorm:"type:text;not null" json:"text"`
}

func (s *RecipeStep) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Tag is shared between recipes and is never removed when a recipe goes away.
type Tag struct {
	ID   uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// RecipeShare grants one user read access to another user's recipe. The pair
// is unique, sharing twice is a no-op.
type RecipeShare struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;index:idx_recipe_shares_recipe_user,unique" json:"recipe_id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index:idx_recipe_shares_recipe_user,unique" json:"user_id"`
}

func (rs *RecipeShare) BeforeCreate(tx *gorm.DB) error {
	if rs.ID == uuid.Nil {
		rs.ID = uuid.New()
	}
	return nil
}

// RecipeImage references an uploaded image in the configured storage backend.
// ObjectKey is a disk path for local storage or an object key for S3.
type RecipeImage struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	RecipeID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipe_id"`
	ObjectKey    string    `gorm:"size:255;not null" json:"object_key"`
	ThumbnailKey string    `gorm:"size:255" json:"thumbnail_key"`
	AltText      string    `gorm:"size:255" json:"alt_text"`
}

func (i *RecipeImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
