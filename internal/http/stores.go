package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/users"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// This file consolidates the service interfaces used by HTTP controllers.
// library.BookService and library.UserService satisfy them in production.

// BookService provides the book operations exposed under /api/books.
type BookService interface {
	Create(ctx context.Context, book *entities.Book) (*entities.Book, error)
	Get(ctx context.Context, id int64) (*entities.Book, error)
	Update(ctx context.Context, pathID int64, book *entities.Book) (*entities.Book, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter books.Filter, page database.PageRequest) (database.Page[entities.Book], error)
	FindByTitle(ctx context.Context, title string) ([]entities.Book, error)
	FindFirstByAuthor(ctx context.Context, author string) (*entities.Book, error)
	Owners(ctx context.Context, id int64) ([]entities.User, error)
	LookupByISBN(ctx context.Context, isbn string) (*entities.Book, error)
}

// UserService provides the user and ownership operations exposed under /api/users.
type UserService interface {
	Create(ctx context.Context, user *entities.User, password string) (*entities.User, error)
	Get(ctx context.Context, id int64) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	Update(ctx context.Context, pathID int64, user *entities.User, password string) (*entities.User, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter users.Filter, page database.PageRequest) (database.Page[entities.User], error)
	AddBook(ctx context.Context, userID, bookID int64) (*entities.User, error)
	RemoveBook(ctx context.Context, userID, bookID int64) (*entities.User, error)
}

// TaskQueue enqueues background imports and reports task progress.
type TaskQueue interface {
	EnqueueImports(ctx context.Context, isbns []string) ([]string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}
