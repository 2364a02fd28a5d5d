package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/plateshare/backend/internal/models"
	"github.com/plateshare/backend/internal/query"
)

// RecipeService owns recipe storage access: the list/filter engine,
// single-recipe CRUD and the saved-set toggle.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// ListParams are the raw, untrusted query parameters of a list request.
type ListParams struct {
	Ingredients    string
	IngredientsAny string
	Tags           string
	TagsAny        string
	CreatedBy      string
	Page           string
}

// ListResult pairs a page of summaries with its pagination envelope.
type ListResult struct {
	Recipes    []models.RecipeSummary `json:"recipes"`
	Pagination query.Pagination       `json:"pagination"`
}

// ListRecipes normalizes the raw parameters, builds the filter and runs
// the count and page queries against it. The two reads share no
// snapshot; a concurrent writer can skew totalRecipes against the page
// by a row, which is accepted.
func (s *RecipeService) ListRecipes(ctx context.Context, params ListParams) (*ListResult, error) {
	filter := query.Filter{
		Ingredients:     query.Tokens(params.Ingredients),
		IngredientsMode: query.ParseMode(params.IngredientsAny),
		Tags:            query.Tokens(params.Tags),
		TagsMode:        query.ParseMode(params.TagsAny),
	}

	plan := query.PlanPage(params.Page)

	if creator := strings.TrimSpace(params.CreatedBy); creator != "" {
		var user models.User
		err := s.db.WithContext(ctx).Where("username = ?", creator).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// An unknown creator matches nothing.
			return &ListResult{
				Recipes:    []models.RecipeSummary{},
				Pagination: plan.Paginate(0, 0),
			}, nil
		}
		if err != nil {
			return nil, err
		}
		filter.CreatedBy = &user.ID
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Scopes(filter.Apply).Count(&total).Error; err != nil {
		return nil, err
	}

	summaries := []models.RecipeSummary{}
	err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Select("recipes.id, recipes.title, recipes.description, recipes.ingredients, recipes.tags, recipes.image_url, users.username AS created_by, recipes.created_at").
		Joins("JOIN users ON users.id = recipes.created_by").
		Scopes(filter.Apply).
		Order("recipes.created_at DESC").
		Offset(plan.Offset).
		Limit(plan.Limit).
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Recipes:    summaries,
		Pagination: plan.Paginate(total, len(summaries)),
	}, nil
}

// GetRecipe retrieves a recipe by its string id. A malformed id is
// reported as ErrInvalidID, an absent row as ErrNotFound.
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	recipeID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// CreateParams carries a validated create request. Ingredient and tag
// normalization happens here so stored arrays are always lowercase.
type CreateParams struct {
	Title        string
	Description  string
	Ingredients  []string
	Tags         []string
	Instructions string
}

func (s *RecipeService) CreateRecipe(ctx context.Context, creatorID uuid.UUID, params CreateParams) (*models.Recipe, error) {
	ingredients := normalizeList(params.Ingredients)
	if len(ingredients) == 0 {
		// Whitespace-only entries normalize away; an ingredient list
		// must survive normalization.
		return nil, ErrNoIngredients
	}

	recipe := models.Recipe{
		Title:        strings.TrimSpace(params.Title),
		Description:  params.Description,
		Ingredients:  ingredients,
		Tags:         normalizeList(params.Tags),
		Instructions: params.Instructions,
		CreatedBy:    creatorID,
	}
	if recipe.Tags == nil {
		recipe.Tags = []string{}
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// UpdateParams holds a partial update; nil fields are left untouched.
type UpdateParams struct {
	Title        *string
	Description  *string
	Ingredients  []string
	Tags         []string
	Instructions *string
}

// UpdateRecipe applies a partial update after the ownership check and
// stamps updated_at.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id string, callerID uuid.UUID, params UpdateParams) (*models.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if !OwnedBy(recipe, callerID) {
		return nil, ErrNotOwner
	}

	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	if params.Title != nil {
		updates["title"] = strings.TrimSpace(*params.Title)
	}
	if params.Description != nil {
		updates["description"] = *params.Description
	}
	if params.Ingredients != nil {
		ingredients := normalizeList(params.Ingredients)
		if len(ingredients) == 0 {
			return nil, ErrNoIngredients
		}
		updates["ingredients"] = pq.StringArray(ingredients)
	}
	if params.Tags != nil {
		updates["tags"] = pq.StringArray(normalizeList(params.Tags))
	}
	if params.Instructions != nil {
		updates["instructions"] = *params.Instructions
	}

	if err := s.db.WithContext(ctx).Model(recipe).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, id)
}

// SetImageURL records the stored image location for a recipe. Ownership
// is checked here as well since the handler calls it directly.
func (s *RecipeService) SetImageURL(ctx context.Context, id string, callerID uuid.UUID, url string) error {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return err
	}
	if !OwnedBy(recipe, callerID) {
		return ErrNotOwner
	}
	return s.db.WithContext(ctx).Model(recipe).Updates(map[string]interface{}{
		"image_url":  url,
		"updated_at": time.Now().UTC(),
	}).Error
}

// DeleteRecipe removes a recipe after the ownership check. Saved-set
// references to it go in the same transaction so reads never see a
// dangling recipe id.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id string, callerID uuid.UUID) error {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return err
	}
	if !OwnedBy(recipe, callerID) {
		return ErrNotOwner
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.SavedRecipe{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", recipe.ID).Error
	})
}

// ToggleSave flips membership of the recipe in the caller's saved set
// and reports the resulting state. Toggling twice restores the original
// membership.
func (s *RecipeService) ToggleSave(ctx context.Context, userID uuid.UUID, recipeID string) (saved bool, err error) {
	recipe, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return false, err
	}

	db := s.db.WithContext(ctx)
	var existing models.SavedRecipe
	lookupErr := db.Where("user_id = ? AND recipe_id = ?", userID, recipe.ID).First(&existing).Error
	if lookupErr == nil {
		if err := db.Where("user_id = ? AND recipe_id = ?", userID, recipe.ID).Delete(&models.SavedRecipe{}).Error; err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
		return false, lookupErr
	}

	createErr := db.Create(&models.SavedRecipe{UserID: userID, RecipeID: recipe.ID}).Error
	if createErr != nil && !errors.Is(createErr, gorm.ErrDuplicatedKey) {
		return false, createErr
	}
	return true, nil
}

// OwnedBy is the single ownership guard used by every mutation path.
// Both identities are reduced to their canonical lowercase string form
// before comparison.
func OwnedBy(recipe *models.Recipe, callerID uuid.UUID) bool {
	return strings.EqualFold(recipe.CreatedBy.String(), callerID.String())
}

func normalizeList(raw []string) []string {
	var out []string
	for _, item := range raw {
		tok := strings.ToLower(strings.TrimSpace(item))
		if tok == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}
