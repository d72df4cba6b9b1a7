package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost keeps verification in the tens of milliseconds range.
const BcryptCost = 12

// HashPassword produces a salted bcrypt hash of the plaintext password.
// The plaintext is never stored or logged.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword verifies a plaintext password against a stored hash.
// A malformed hash verifies as false rather than surfacing an error.
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
