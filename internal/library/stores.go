package library

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/users"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// BookStore persists books.
type BookStore interface {
	CreateBook(book *entities.Book) error
	SaveBook(book *entities.Book) error
	GetBookByID(id uint) (*entities.Book, error)
	FindBooksByTitle(title string) ([]entities.Book, error)
	FindFirstByAuthor(author string) (*entities.Book, error)
	ListBooks(filter books.Filter, page database.PageRequest) (database.Page[entities.Book], error)
	GetOwners(bookID uint) ([]entities.User, error)
	DeleteBook(id uint) error
}

// UserStore persists users and their owned books.
type UserStore interface {
	CreateUser(user *entities.User) error
	SaveUser(user *entities.User) error
	GetUserByID(id uint) (*entities.User, error)
	GetUserByUsername(username string) (*entities.User, error)
	ListUsers(filter users.Filter, page database.PageRequest) (database.Page[entities.User], error)
	ReplaceBooks(user *entities.User) error
	DeleteUser(id uint) error
}

// ISBNLookup resolves an ISBN through the external bibliographic source.
type ISBNLookup interface {
	LookupByISBN(ctx context.Context, isbn string) (*entities.Book, error)
}

// PasswordHasher hashes plaintext passwords before they are stored.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// storedID converts a path id into a store key. Non-positive ids never exist.
func storedID(id int64, resource string) (uint, error) {
	if id <= 0 {
		return 0, entities.NewNotFoundError(resource)
	}
	return uint(id), nil
}
