package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/bookshelf/internal/entities"
)

const (
	// DefaultMinPasswordLength applies when the configured minimum is not positive.
	DefaultMinPasswordLength = 8
	// bcrypt has a 72-byte limit
	maxPasswordBytes = 72
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrPasswordTooLong = &entities.ValidationError{
		Field:   "password",
		Message: fmt.Sprintf("password exceeds maximum length of %d bytes", maxPasswordBytes),
	}
)

// PasswordHasher turns plaintext passwords into bcrypt hashes.
type PasswordHasher struct {
	cost      int
	minLength int
}

// NewPasswordHasher creates a hasher with the given bcrypt cost and minimum length.
func NewPasswordHasher(cost, minLength int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if minLength <= 0 {
		minLength = DefaultMinPasswordLength
	}
	return &PasswordHasher{cost: cost, minLength: minLength}
}

// Hash validates the password length and returns its bcrypt hash.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if len(password) < h.minLength {
		return "", &entities.ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", h.minLength),
		}
	}
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a password with its hash.
func CheckPassword(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}
		return err
	}
	return nil
}
