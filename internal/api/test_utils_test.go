package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/plateshare/backend/internal/api"
	"github.com/plateshare/backend/internal/router"
	"github.com/plateshare/backend/internal/service"
	"github.com/plateshare/backend/internal/testhelpers"
	"go.uber.org/zap"
)

// setupTestRouter wires the full route table against a containerized
// Postgres, with image upload and redis disabled.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)

	authService := service.NewAuthService(db, nil, "test-secret")
	recipeService := service.NewRecipeService(db)
	userService := service.NewUserService(db, recipeService)

	engine := router.SetupRouter(
		api.NewAuthHandler(authService, userService),
		api.NewRecipeHandler(recipeService, nil, authService),
		api.NewUserHandler(userService, authService),
		api.NewHealthHandler(db, nil),
		zap.NewNop(),
	)
	return engine, db
}

// registerUser registers a user through the API and returns the token.
func registerUser(t *testing.T, engine *gin.Engine, username string) string {
	t.Helper()

	w := doJSON(engine, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp api.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func doJSON(engine *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(fmt.Sprintf("encode request body: %v", err))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}
