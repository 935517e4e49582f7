package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	password := "mySecretPassword123"

	hash, err := HashPassword(password)
	require.NoError(t, err)

	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)
	assert.Contains(t, hash, "$2a$")
}

func TestVerifyPassword(t *testing.T) {
	password := "mySecretPassword123"

	hash, err := HashPassword(password)
	require.NoError(t, err)

	tests := []struct {
		name     string
		hash     string
		password string
		want     bool
	}{
		{
			name:     "Correct password",
			hash:     hash,
			password: password,
			want:     true,
		},
		{
			name:     "Wrong password",
			hash:     hash,
			password: "wrongPassword",
			want:     false,
		},
		{
			name:     "Empty password",
			hash:     hash,
			password: "",
			want:     false,
		},
		{
			name:     "Garbage hash",
			hash:     "not-a-bcrypt-hash",
			password: password,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPassword(tt.hash, tt.password))
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	password := "samePassword"

	hash1, err := HashPassword(password)
	require.NoError(t, err)
	hash2, err := HashPassword(password)
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
	assert.True(t, VerifyPassword(hash1, password))
	assert.True(t, VerifyPassword(hash2, password))
}

func TestBcryptVerifier(t *testing.T) {
	var verifier CredentialVerifier = NewBcryptVerifier()

	hash, err := verifier.Hash("password123")
	require.NoError(t, err)

	assert.True(t, verifier.Verify(hash, "password123"))
	assert.False(t, verifier.Verify(hash, "password124"))
}
