package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidation(t *testing.T) {
	engine, _ := setupTestRouter(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{name: "missing email", body: map[string]interface{}{"username": "alice", "password": "password123"}},
		{name: "bad email", body: map[string]interface{}{"username": "alice", "email": "nope", "password": "password123"}},
		{name: "short username", body: map[string]interface{}{"username": "al", "email": "a@example.com", "password": "password123"}},
		{name: "short password", body: map[string]interface{}{"username": "alice", "email": "a@example.com", "password": "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(engine, http.MethodPost, "/api/v1/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRegisterDuplicateEmailMessage(t *testing.T) {
	engine, _ := setupTestRouter(t)
	registerUser(t, engine, "alice")

	w := doJSON(engine, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username": "alice2",
		"email":    "ALICE@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "email already in use", resp.Error)
}

func TestLoginStatuses(t *testing.T) {
	engine, _ := setupTestRouter(t)
	registerUser(t, engine, "alice")

	w := doJSON(engine, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(engine, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeEndpoint(t *testing.T) {
	engine, _ := setupTestRouter(t)
	token := registerUser(t, engine, "alice")

	w := doJSON(engine, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		UserInfo struct {
			Username string `json:"username"`
		} `json:"userInfo"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.UserInfo.Username)
	assert.NotContains(t, w.Body.String(), "example.com")

	w = doJSON(engine, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutWithoutDenylist(t *testing.T) {
	// With redis disabled logout still succeeds; revocation is a no-op.
	engine, _ := setupTestRouter(t)
	token := registerUser(t, engine, "alice")

	w := doJSON(engine, http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
