package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Recipe is a user-authored recipe. Ingredients and tags are stored as
// lowercase text[] so the Postgres array operators @> and && can serve
// contains-all / contains-any filtering directly.
type Recipe struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Description  string         `gorm:"type:text;not null" json:"description"`
	Ingredients  pq.StringArray `gorm:"type:text[];not null" json:"ingredients"`
	Tags         pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"tags"`
	Instructions string         `gorm:"type:text;not null" json:"instructions,omitempty"`
	ImageURL     string         `gorm:"size:255" json:"image_url,omitempty"`
	CreatedBy    uuid.UUID      `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt    time.Time      `json:"created_at"`
	// autoUpdateTime is off so the column stays NULL until the first
	// successful mutation stamps it.
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false;default:null" json:"updated_at,omitempty"`
}

// RecipeSummary is the list-view projection: instructions omitted,
// created_by expanded to the creator's username.
type RecipeSummary struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Ingredients pq.StringArray `json:"ingredients"`
	Tags        pq.StringArray `json:"tags"`
	ImageURL    string         `json:"image_url,omitempty"`
	CreatedBy   string         `json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
}

// SavedRecipe records one entry of a user's saved set.
type SavedRecipe struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}
