package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLen = 5
	MaxPasswordLen = 72

	HashFactor = 10

	// Driver credentials authenticate with their synthetic email in
	// this domain, staff accounts with a real address.
	CredentialDomain = "@driver.fleet"
)

// resolveIdentifier turns a login identifier into the email it is
// stored under. An identifier without "@" is a driver credential
// username.
func resolveIdentifier(identifier string) string {
	if !strings.Contains(identifier, "@") {
		return identifier + CredentialDomain
	}
	return identifier
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email required")
	}
	if strings.Count(email, "@") != 1 {
		return fmt.Errorf("must contain only one @: %s", email)
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password required")
	}

	passwordLen := len(password)
	if passwordLen < MinPasswordLen || passwordLen > MaxPasswordLen {
		return fmt.Errorf("password must be in range [%d, %d]", MinPasswordLen, MaxPasswordLen)
	}
	return nil
}

// generateOTP returns a 6-digit one-time code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func hashSecret(secret string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(secret), HashFactor)
}

func checkSecret(hashed []byte, secret string) bool {
	return bcrypt.CompareHashAndPassword(hashed, []byte(secret)) == nil
}
