package auth

import (
	"errors"
	"fmt"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// UserFinder is the user lookup needed to check credentials.
type UserFinder interface {
	GetUserByUsername(username string) (*entities.User, error)
}

// Service checks basic-auth credentials against stored bcrypt hashes.
type Service struct {
	users UserFinder
}

// NewService creates a new authentication service.
func NewService(users UserFinder) *Service {
	return &Service{users: users}
}

// Authenticate validates credentials and returns the user.
// Unknown usernames and wrong passwords both yield entities.ErrInvalidCredentials.
func (s *Service) Authenticate(username, password string) (*entities.User, error) {
	if username == "" || password == "" {
		return nil, entities.ErrInvalidCredentials
	}

	user, err := s.users.GetUserByUsername(username)
	if err != nil {
		var notFound *entities.NotFoundError
		if errors.As(err, &notFound) {
			return nil, entities.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.Password); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, entities.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to check password: %w", err)
	}

	return user, nil
}
