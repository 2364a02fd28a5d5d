package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/plateshare/backend/internal/models"
	"github.com/plateshare/backend/internal/types"
)

const tokenTTL = 24 * time.Hour

// AuthService handles registration, login and token verification. The
// redis client backs the logout denylist; a nil client disables it.
type AuthService struct {
	db        *gorm.DB
	redis     *redis.Client
	jwtSecret string
}

func NewAuthService(db *gorm.DB, redisClient *redis.Client, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		redis:     redisClient,
		jwtSecret: jwtSecret,
	}
}

// Register creates a user and returns a signed token. The existence
// pre-checks only produce friendly errors; the unique indexes are the
// real authority, so a duplicate-key failure from the insert itself is
// translated into the same "in use" errors.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (string, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if len(username) < 3 {
		return "", ErrInvalidUsername
	}

	db := s.db.WithContext(ctx)

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return "", ErrEmailInUse
	}
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		return "", ErrUsernameInUse
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race between pre-check and insert. Only a
			// successful re-check may pick a sentinel; a storage
			// failure here stays a storage failure.
			var count int64
			if countErr := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; countErr != nil {
				return "", countErr
			}
			if count > 0 {
				return "", ErrEmailInUse
			}
			return "", ErrUsernameInUse
		}
		return "", err
	}

	return s.generateToken(user.ID)
}

// Login verifies credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.generateToken(user.ID)
}

func (s *AuthService) generateToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"jti":     uuid.NewString(),
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken verifies the signature and expiry, then checks the
// denylist for a revoked jti.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*types.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}

	tokenID, _ := claims["jti"].(string)
	var expiresAt time.Time
	if exp, ok := claims["exp"].(float64); ok {
		expiresAt = time.Unix(int64(exp), 0)
	}

	if s.redis != nil && tokenID != "" {
		revoked, err := s.redis.Exists(ctx, revokedKey(tokenID)).Result()
		if err != nil {
			return nil, fmt.Errorf("denylist check: %w", err)
		}
		if revoked > 0 {
			return nil, ErrTokenRevoked
		}
	}

	return &types.TokenClaims{
		UserID:    userID,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout denylists the token's jti until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, claims *types.TokenClaims) error {
	if s.redis == nil || claims.TokenID == "" {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.redis.Set(ctx, revokedKey(claims.TokenID), "1", ttl).Err()
}

func revokedKey(tokenID string) string {
	return "auth:revoked:" + tokenID
}
