package service

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/plateshare/backend/internal/testhelpers"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, nil, "test-secret")
	ctx := context.Background()

	token, err := svc.Register(ctx, "alice", "Alice@Example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.NotEqual(t, "", claims.UserID.String())
	assert.NotEmpty(t, claims.TokenID)

	// Email was lowercased on registration.
	loginToken, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, loginToken)

	_, err = svc.Login(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, nil, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	// Differs only by case; normalization makes it a duplicate.
	_, err = svc.Register(ctx, "alice2", "ALICE@example.com", "password123")
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, nil, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other@example.com", "password123")
	assert.ErrorIs(t, err, ErrUsernameInUse)
}

func TestRegisterTrimsUsername(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, nil, "test-secret")
	ctx := context.Background()

	// Padding does not count toward the minimum length.
	_, err := svc.Register(ctx, " ab ", "ab@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidUsername)

	token, err := svc.Register(ctx, " bob ", "bob@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	var count int64
	require.NoError(t, db.Table("users").Where("username = ?", "bob").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// TestRegisterRaceRecheckFailure loses the pre-check/insert race and
// then fails the disambiguating count: the storage error must surface
// instead of an "in use" guess.
func TestRegisterRaceRecheckFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	errStorage := errors.New("connection reset")

	mock.ExpectQuery(`SELECT .* FROM "users" WHERE email`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT .* FROM "users" WHERE username`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnError(errStorage)

	svc := NewAuthService(db, nil, "test-secret")
	_, err = svc.Register(context.Background(), "alice", "alice@example.com", "password123")
	assert.ErrorIs(t, err, errStorage)
	assert.NotErrorIs(t, err, ErrEmailInUse)
	assert.NotErrorIs(t, err, ErrUsernameInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, nil, "test-secret")

	_, err := svc.ValidateToken(context.Background(), "not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	issuer := NewAuthService(db, nil, "secret-a")
	verifier := NewAuthService(db, nil, "secret-b")
	ctx := context.Background()

	token, err := issuer.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(ctx, token)
	assert.Error(t, err)
}
