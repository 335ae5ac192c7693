package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicchef/magic-chef/backend/internal/models"
	"github.com/magicchef/magic-chef/backend/internal/testhelpers"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	token, err := svc.Register("Alice", "alice@example.com", "supersecret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "Alice", claims.Name)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "alice@example.com").Error)
	assert.Equal(t, claims.UserID, user.ID)
	assert.NotEqual(t, "supersecret", user.PasswordHash)

	loginToken, err := svc.Login("alice@example.com", "supersecret")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.Register("Bob", "bob@example.com", "short")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.Register("Alice", "alice@example.com", "supersecret")
	require.NoError(t, err)

	_, err = svc.Register("Other Alice", "alice@example.com", "anothersecret")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.Register("Alice", "alice@example.com", "supersecret")
	require.NoError(t, err)

	_, err = svc.Login("alice@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	token, err := svc.Register("Alice", "alice@example.com", "supersecret")
	require.NoError(t, err)

	other := NewAuthService(db, "different-secret")
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
