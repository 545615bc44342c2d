package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), "baku-identity", "baku-project", 0)

	token, expiresAt, err := issuer.Issue("uid-1")
	require.NoError(t, err)
	assert.True(t, expiresAt.IsZero())

	subject, err := issuer.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "uid-1", subject)
}

func TestTokenIssuer_Verify_Rejects(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), "baku-identity", "baku-project", 0)
	token, _, err := issuer.Issue("uid-1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		verifier *TokenIssuer
		token    string
	}{
		{
			name:     "wrong key",
			verifier: NewTokenIssuer([]byte("other"), "baku-identity", "baku-project", 0),
			token:    token,
		},
		{
			name:     "wrong issuer",
			verifier: NewTokenIssuer([]byte("secret"), "baku-attest", "baku-project", 0),
			token:    token,
		},
		{
			name:     "wrong audience",
			verifier: NewTokenIssuer([]byte("secret"), "baku-identity", "other-project", 0),
			token:    token,
		},
		{
			name:     "garbage",
			verifier: issuer,
			token:    "not-a-jwt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, err := tt.verifier.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Empty(t, subject)
		})
	}
}

func TestTokenIssuer_Expiry(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer([]byte("secret"), "baku-attest", "baku-project", time.Hour)
	issuer.now = func() time.Time { return now }

	token, expiresAt, err := issuer.Issue("baku-app")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	_, err = issuer.Verify(token)
	assert.NoError(t, err)

	issuer.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
