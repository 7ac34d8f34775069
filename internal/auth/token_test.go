package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("0123456789abcdef", time.Hour)

	token, err := tm.Generate("ci-runner")
	require.NoError(t, err)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "ci-runner", claims.ClientID)
	assert.Equal(t, "ci-runner", claims.Subject)
}

func TestGenerateRequiresClientID(t *testing.T) {
	_, err := NewTokenManager("0123456789abcdef", time.Hour).Generate("")
	assert.Error(t, err)
}

func TestValidateRejects(t *testing.T) {
	tm := NewTokenManager("0123456789abcdef", time.Hour)

	other, err := NewTokenManager("fedcba9876543210", time.Hour).Generate("ci")
	require.NoError(t, err)

	expired, err := NewTokenManager("0123456789abcdef", -time.Minute).Generate("ci")
	require.NoError(t, err)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ClientID:         "ci",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else"},
	}).SignedString([]byte("0123456789abcdef"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", other},
		{"expired", expired},
		{"wrong issuer", foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tm.Validate(tt.token)
			assert.Error(t, err)
		})
	}
}
