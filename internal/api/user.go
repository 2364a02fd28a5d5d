package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateshare/backend/internal/middleware"
	"github.com/plateshare/backend/internal/service"
)

type UserHandler struct {
	users *service.UserService
	auth  *service.AuthService
}

func NewUserHandler(users *service.UserService, auth *service.AuthService) *UserHandler {
	return &UserHandler{users: users, auth: auth}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		// The static route must be registered before the wildcard, and
		// gin requires a single wildcard name per segment: follow takes
		// the target's id through the same ":username" slot.
		users.GET("/search", h.SearchUsers)
		users.GET("/:username", h.GetProfile)
		users.POST("/:username/follow", middleware.AuthMiddleware(h.auth), h.ToggleFollow)
	}
}

// GetProfile serves a public profile with one page of the user's
// recipes.
func (h *UserHandler) GetProfile(c *gin.Context) {
	result, err := h.users.GetProfile(c.Request.Context(), c.Param("username"), c.Query("page"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *UserHandler) SearchUsers(c *gin.Context) {
	profiles, err := h.users.SearchUsers(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": profiles})
}

func (h *UserHandler) ToggleFollow(c *gin.Context) {
	targetID := c.Param("username")
	following, err := h.users.ToggleFollow(c.Request.Context(), callerID(c), targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        targetID,
		"following": following,
	})
}
