package library

import (
	"context"
	"time"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/users"
	"github.com/mrlokans/bookshelf/internal/entities"
)

type UserService struct {
	users  UserStore
	books  BookStore
	hasher PasswordHasher
	audit  *audit.Service
	now    func() time.Time
}

func NewUserService(userStore UserStore, bookStore BookStore, hasher PasswordHasher, auditService *audit.Service) *UserService {
	return &UserService{
		users:  userStore,
		books:  bookStore,
		hasher: hasher,
		audit:  auditService,
		now:    time.Now,
	}
}

// Create validates the user, hashes password and stores the result.
// The new user owns no books; ownership changes go through AddBook.
func (s *UserService) Create(ctx context.Context, user *entities.User, password string) (*entities.User, error) {
	user.ID = 0
	user.Books = nil
	if err := user.Validate(s.now()); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user.Password = hash

	if err := s.users.CreateUser(user); err != nil {
		return nil, err
	}
	s.audit.LogCreate(ctx, entities.ResourceUser, user.ID, user.Username)
	return user, nil
}

// Get returns the user with id and its owned books.
func (s *UserService) Get(ctx context.Context, id int64) (*entities.User, error) {
	userID, err := storedID(id, entities.ResourceUser)
	if err != nil {
		return nil, err
	}
	return s.users.GetUserByID(userID)
}

// GetByUsername returns the user registered under username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	return s.users.GetUserByUsername(username)
}

// Update replaces username, name and birth date of the user at pathID.
// A non-empty password is re-hashed; an empty one keeps the stored hash.
// Owned books are left untouched.
func (s *UserService) Update(ctx context.Context, pathID int64, user *entities.User, password string) (*entities.User, error) {
	if int64(user.ID) != pathID {
		return nil, &entities.IDMismatchError{Resource: entities.ResourceUser, PathID: pathID, BodyID: user.ID}
	}

	existing, err := s.Get(ctx, pathID)
	if err != nil {
		return nil, err
	}

	existing.Username = user.Username
	existing.Name = user.Name
	existing.BirthDate = user.BirthDate
	if err := existing.Validate(s.now()); err != nil {
		return nil, err
	}

	if password != "" {
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return nil, err
		}
		existing.Password = hash
	}

	if err := s.users.SaveUser(existing); err != nil {
		return nil, err
	}
	s.audit.LogUpdate(ctx, entities.ResourceUser, existing.ID, existing.Username)
	return existing, nil
}

// Delete removes the user and its ownership links. Owned books stay in the catalogue.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.DeleteUser(user.ID); err != nil {
		return err
	}
	s.audit.LogDelete(ctx, entities.ResourceUser, user.ID, user.Username)
	return nil
}

// List returns one page of users narrowed by filter.
func (s *UserService) List(ctx context.Context, filter users.Filter, page database.PageRequest) (database.Page[entities.User], error) {
	if filter.BornAfter != nil && filter.BornBefore != nil && filter.BornAfter.After(*filter.BornBefore) {
		return database.Page[entities.User]{}, entities.NewInvalidFieldError("from")
	}
	return s.users.ListUsers(filter, page)
}

// AddBook records that the user owns the book and persists the collection.
func (s *UserService) AddBook(ctx context.Context, userID, bookID int64) (*entities.User, error) {
	return s.changeOwnership(ctx, "user_add_book", userID, bookID, (*entities.User).AddBook)
}

// RemoveBook drops the book from the user's collection and persists it.
func (s *UserService) RemoveBook(ctx context.Context, userID, bookID int64) (*entities.User, error) {
	return s.changeOwnership(ctx, "user_remove_book", userID, bookID, (*entities.User).RemoveBook)
}

func (s *UserService) changeOwnership(
	ctx context.Context,
	action string,
	userID, bookID int64,
	change func(*entities.User, entities.Book) error,
) (*entities.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	id, err := storedID(bookID, entities.ResourceBook)
	if err != nil {
		return nil, err
	}
	book, err := s.books.GetBookByID(id)
	if err != nil {
		return nil, err
	}

	if err := change(user, *book); err != nil {
		s.audit.LogOwnership(ctx, action, user.ID, book.ID, err)
		return nil, err
	}

	if err := s.users.ReplaceBooks(user); err != nil {
		return nil, err
	}
	s.audit.LogOwnership(ctx, action, user.ID, book.ID, nil)
	return user, nil
}
