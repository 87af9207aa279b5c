package services

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	// Synthetic driver logins live in their own namespace so the auth
	// service can tell them from staff emails (staff identifiers carry
	// their own "@").
	CredentialDomain = "@driver.fleet"

	// Charset skips ambiguous glyphs (0/o, 1/l) since the pair is read
	// out loud to the driver.
	passwordCharset = "abcdefghijkmnpqrstuvwxyz23456789"
	passwordLen     = 10

	HashFactor = 10

	// How many fresh nonces to try when the storage uniqueness
	// constraint rejects a minted username.
	maxMintAttempts = 3
)

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// mintUsername derives the trip-scoped login from the vehicle plate
// and a millisecond nonce. Practical uniqueness only; the users table
// unique index is the authoritative guarantee.
func mintUsername(licensePlate string, now time.Time) string {
	return fmt.Sprintf("%s_%d", nonAlnum.ReplaceAllString(licensePlate, ""), now.UnixMilli())
}

func credentialEmail(username string) string {
	return username + CredentialDomain
}

// generatePassword returns a random human-typeable secret. Entropy is
// sized for the credential's short life: one trip.
func generatePassword() (string, error) {
	b := make([]byte, passwordLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("cannot generate password: %w", err)
	}
	for i := range b {
		b[i] = passwordCharset[int(b[i])%len(passwordCharset)]
	}
	return string(b), nil
}

func hashSecret(secret string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(secret), HashFactor)
}
