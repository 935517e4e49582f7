package util

import (
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// CredentialVerifier abstracts the password hashing scheme so it can be
// swapped without touching services or controllers.
type CredentialVerifier interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// BcryptVerifier implements CredentialVerifier with bcrypt.
type BcryptVerifier struct{}

func NewBcryptVerifier() BcryptVerifier {
	return BcryptVerifier{}
}

func (BcryptVerifier) Hash(password string) (string, error) {
	return HashPassword(password)
}

func (BcryptVerifier) Verify(hashedPassword, password string) bool {
	return VerifyPassword(hashedPassword, password)
}

// HashPassword hashes a plain text password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword checks if a plain text password matches a hashed password.
// bcrypt's own comparison is constant-time over the hash.
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
