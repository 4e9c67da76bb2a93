package auth

import (
	"errors"

	appErrors "phonebook/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 6

type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// BcryptHasher hashes passwords with bcrypt at the configured cost.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", appErrors.ErrInternalServer.WithError(err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrHashTooShort) {
		return appErrors.ErrInvalidCredentials
	}
	if err != nil {
		return appErrors.ErrInvalidCredentials.WithError(err)
	}
	return nil
}

func PasswordRequirements(password string) error {
	if len(password) < MinPasswordLength {
		return appErrors.NewValidationError("password", "must be at least 6 characters long")
	}
	return nil
}
