package types

import (
	"time"

	"github.com/google/uuid"
)

// TokenClaims is the decoded, verified content of a bearer token.
type TokenClaims struct {
	UserID    uuid.UUID
	TokenID   string
	ExpiresAt time.Time
}
