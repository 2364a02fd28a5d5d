package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plateshare/backend/internal/middleware"
	"github.com/plateshare/backend/internal/service"
)

const maxImageSize = 5 << 20 // 5 MiB

type RecipeHandler struct {
	recipes *service.RecipeService
	images  *service.ImageService
	auth    *service.AuthService
}

func NewRecipeHandler(recipes *service.RecipeService, images *service.ImageService, auth *service.AuthService) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		images:  images,
		auth:    auth,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", middleware.AuthMiddleware(h.auth), h.CreateRecipe)
		recipes.PUT("/:id", middleware.AuthMiddleware(h.auth), h.UpdateRecipe)
		recipes.DELETE("/:id", middleware.AuthMiddleware(h.auth), h.DeleteRecipe)
		recipes.POST("/:id/save", middleware.AuthMiddleware(h.auth), h.ToggleSave)
		recipes.POST("/:id/image", middleware.AuthMiddleware(h.auth), h.UploadImage)
	}
}

// ListRecipes serves the filtered, paginated recipe listing.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	result, err := h.recipes.ListRecipes(c.Request.Context(), service.ListParams{
		Ingredients:    c.Query("ingredients"),
		IngredientsAny: c.Query("any"),
		Tags:           c.Query("tags"),
		TagsAny:        c.Query("tagsAny"),
		CreatedBy:      c.Query("createdBy"),
		Page:           c.Query("page"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

type CreateRecipeRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Ingredients  []string `json:"ingredients" binding:"required,min=1"`
	Tags         []string `json:"tags"`
	Instructions string   `json:"instructions" binding:"required"`
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), callerID(c), service.CreateParams{
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Tags:         req.Tags,
		Instructions: req.Instructions,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

type UpdateRecipeRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Tags         []string `json:"tags"`
	Instructions *string  `json:"instructions"`
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), c.Param("id"), callerID(c), service.UpdateParams{
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Tags:         req.Tags,
		Instructions: req.Instructions,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	if err := h.recipes.DeleteRecipe(c.Request.Context(), c.Param("id"), callerID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "recipe deleted",
		"id":      c.Param("id"),
	})
}

func (h *RecipeHandler) ToggleSave(c *gin.Context) {
	saved, err := h.recipes.ToggleSave(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    c.Param("id"),
		"saved": saved,
	})
}

// UploadImage accepts a multipart image, stores it in S3 and records
// the URL on the recipe.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage unavailable"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !service.OwnedBy(recipe, callerID(c)) {
		respondError(c, service.ErrNotOwner)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file required"})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, err)
		return
	}

	url, err := h.images.UploadRecipeImage(c.Request.Context(), recipe.ID, data, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.recipes.SetImageURL(c.Request.Context(), c.Param("id"), callerID(c), url); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

func callerID(c *gin.Context) uuid.UUID {
	id, _ := c.Get("user_id")
	userID, _ := id.(uuid.UUID)
	return userID
}
