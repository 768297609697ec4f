package token

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	id := uuid.New()
	signed, err := GenerateJWT(id, "ada@example.com", "Ada Lovelace", "secret", 5)
	require.NoError(t, err)

	claims, err := ValidateJWT(signed, "secret")
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada Lovelace", claims.FullName)
}

func TestValidateJWT_Rejects(t *testing.T) {
	id := uuid.New()
	valid, err := GenerateJWT(id, "a@b.c", "A", "secret", 5)
	require.NoError(t, err)
	expired, err := GenerateJWT(id, "a@b.c", "A", "secret", -1)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"empty token", "", "secret"},
		{"wrong secret", valid, "other"},
		{"expired", expired, "secret"},
		{"garbage", "not.a.jwt", "secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateJWT(tt.token, tt.secret)
			assert.Error(t, err)
		})
	}
}

func TestGenerateRefreshToken_Unique(t *testing.T) {
	id := uuid.New()
	a, err := GenerateRefreshToken(id, "refresh", 7)
	require.NoError(t, err)
	b, err := GenerateRefreshToken(id, "refresh", 7)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	claims, err := ValidateJWT(a, "refresh")
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
}
