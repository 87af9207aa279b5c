package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMintUsername(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

	username := mintUsername("ABC-1234", now)
	assert.Regexp(t, regexp.MustCompile(`^ABC1234_\d+$`), username)

	// plate sanitization keeps alphanumerics only
	assert.Regexp(t, `^KZ857AB_\d+$`, mintUsername("KZ 857 AB", now))

	// different dispatch instants never collide on the same plate
	later := now.Add(time.Millisecond)
	assert.NotEqual(t, mintUsername("ABC-1234", now), mintUsername("ABC-1234", later))
}

func TestCredentialEmail(t *testing.T) {
	assert.Equal(t, "ABC1234_17@driver.fleet", credentialEmail("ABC1234_17"))
}

func TestGeneratePassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		pwd, err := generatePassword()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(pwd), 8)
		assert.Regexp(t, `^[a-z0-9]+$`, pwd)
		seen[pwd] = true
	}
	// all distinct, with overwhelming probability
	assert.Len(t, seen, 50)
}

func TestHashSecret(t *testing.T) {
	pwd, err := generatePassword()
	require.NoError(t, err)

	hash, err := hashSecret(pwd)
	require.NoError(t, err)

	assert.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte(pwd)))
	assert.Error(t, bcrypt.CompareHashAndPassword(hash, []byte("wrong-secret")))
}
