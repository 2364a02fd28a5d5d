package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateshare/backend/internal/models"
	"github.com/plateshare/backend/internal/query"
)

// UserService handles public profiles, username search and the
// following set.
type UserService struct {
	db      *gorm.DB
	recipes *RecipeService
}

func NewUserService(db *gorm.DB, recipes *RecipeService) *UserService {
	return &UserService{db: db, recipes: recipes}
}

// ProfileResult is the public profile page: user info, one page of the
// user's recipes and the pagination envelope.
type ProfileResult struct {
	UserInfo    models.PublicProfile   `json:"userInfo"`
	UserRecipes []models.RecipeSummary `json:"userRecipes"`
	Pagination  query.Pagination       `json:"pagination"`
}

// GetProfile looks up a user by username and returns their profile with
// one page of their recipes, newest first.
func (s *UserService) GetProfile(ctx context.Context, username, page string) (*ProfileResult, error) {
	username = strings.TrimSpace(username)

	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	listing, err := s.recipes.ListRecipes(ctx, ListParams{CreatedBy: user.Username, Page: page})
	if err != nil {
		return nil, err
	}

	return &ProfileResult{
		UserInfo:    user.Profile(),
		UserRecipes: listing.Recipes,
		Pagination:  listing.Pagination,
	}, nil
}

// SearchUsers returns profiles whose username contains the query,
// case-insensitively. An empty query matches nobody.
func (s *UserService) SearchUsers(ctx context.Context, q string) ([]models.PublicProfile, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []models.PublicProfile{}, nil
	}

	var users []models.User
	err := s.db.WithContext(ctx).
		Where("username ILIKE ?", "%"+escapeLike(q)+"%").
		Order("username ASC").
		Limit(50).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	profiles := make([]models.PublicProfile, len(users))
	for i := range users {
		profiles[i] = users[i].Profile()
	}
	return profiles, nil
}

// escapeLike neutralizes LIKE metacharacters so the search query is
// matched literally.
func escapeLike(q string) string {
	r := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
	return r.Replace(q)
}

// ToggleFollow flips membership of the target user in the caller's
// following set and reports the resulting state.
func (s *UserService) ToggleFollow(ctx context.Context, callerID uuid.UUID, targetID string) (following bool, err error) {
	followeeID, err := uuid.Parse(targetID)
	if err != nil {
		return false, ErrInvalidID
	}

	db := s.db.WithContext(ctx)

	var target models.User
	if err := db.First(&target, "id = ?", followeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	var existing models.Follow
	lookupErr := db.Where("follower_id = ? AND followee_id = ?", callerID, followeeID).First(&existing).Error
	if lookupErr == nil {
		if err := db.Where("follower_id = ? AND followee_id = ?", callerID, followeeID).Delete(&models.Follow{}).Error; err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
		return false, lookupErr
	}

	createErr := db.Create(&models.Follow{FollowerID: callerID, FolloweeID: followeeID}).Error
	if createErr != nil && !errors.Is(createErr, gorm.ErrDuplicatedKey) {
		return false, createErr
	}
	return true, nil
}

// MeResult is the authenticated view of the caller's own account.
type MeResult struct {
	UserInfo     models.PublicProfile `json:"userInfo"`
	SavedRecipes []uuid.UUID          `json:"savedRecipes"`
	Following    []uuid.UUID          `json:"following"`
}

// Me returns the caller's profile with their saved and following id
// sets.
func (s *UserService) Me(ctx context.Context, userID uuid.UUID) (*MeResult, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	saved := []uuid.UUID{}
	if err := db.Model(&models.SavedRecipe{}).Where("user_id = ?", userID).Order("created_at DESC").Pluck("recipe_id", &saved).Error; err != nil {
		return nil, err
	}

	following := []uuid.UUID{}
	if err := db.Model(&models.Follow{}).Where("follower_id = ?", userID).Order("created_at DESC").Pluck("followee_id", &following).Error; err != nil {
		return nil, err
	}

	return &MeResult{
		UserInfo:     user.Profile(),
		SavedRecipes: saved,
		Following:    following,
	}, nil
}
