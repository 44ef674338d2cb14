package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authors-api/pkg/jwt"
)

func TestGenerateAndValidate(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)

	token, err := manager.Generate("7b8a1b09-6d45-4a52-9f0a-3f2f54c0a111", "jane@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "7b8a1b09-6d45-4a52-9f0a-3f2f54c0a111", claims.AuthorID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestValidateExpiredToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", -time.Minute)

	token, err := manager.Generate("id", "jane@example.com")
	require.NoError(t, err)

	_, err = manager.Validate(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := jwt.NewManager("secret-a", time.Hour)
	verifier := jwt.NewManager("secret-b", time.Hour)

	token, err := issuer.Generate("id", "jane@example.com")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestValidateMalformedToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c", "header.payload"} {
		_, err := manager.Validate(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken, "token %q", token)
	}
}
