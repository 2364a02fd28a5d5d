package service

import "errors"

// Sentinel errors the handlers translate into HTTP statuses. Services
// never let raw storage errors reach a client; anything not in this
// taxonomy surfaces as a generic 500.
var (
	ErrInvalidID          = errors.New("malformed resource id")
	ErrNotFound           = errors.New("resource not found")
	ErrNotOwner           = errors.New("not the recipe owner")
	ErrNoIngredients      = errors.New("at least one ingredient is required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidUsername    = errors.New("username must be at least 3 characters")
	ErrEmailInUse         = errors.New("email already in use")
	ErrUsernameInUse      = errors.New("username already in use")
	ErrTokenRevoked       = errors.New("token revoked")
)
