package library

import (
	"context"
	"fmt"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
)

type BookService struct {
	store  BookStore
	lookup ISBNLookup
	audit  *audit.Service
}

// NewBookService creates the book operations. lookup and auditService may be nil.
func NewBookService(store BookStore, lookup ISBNLookup, auditService *audit.Service) *BookService {
	return &BookService{
		store:  store,
		lookup: lookup,
		audit:  auditService,
	}
}

// Create validates and stores a new book. Any id in the request is ignored.
func (s *BookService) Create(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	book.ID = 0
	book.ISBN = entities.NormalizeISBN(book.ISBN)
	if err := book.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.CreateBook(book); err != nil {
		return nil, err
	}
	s.audit.LogCreate(ctx, entities.ResourceBook, book.ID, book.Title)
	return book, nil
}

// Get returns the book with id.
func (s *BookService) Get(ctx context.Context, id int64) (*entities.Book, error) {
	bookID, err := storedID(id, entities.ResourceBook)
	if err != nil {
		return nil, err
	}
	return s.store.GetBookByID(bookID)
}

// Update replaces every field of the book at pathID with book.
// The body id must equal pathID; that is checked before the store is touched.
func (s *BookService) Update(ctx context.Context, pathID int64, book *entities.Book) (*entities.Book, error) {
	if int64(book.ID) != pathID {
		return nil, &entities.IDMismatchError{Resource: entities.ResourceBook, PathID: pathID, BodyID: book.ID}
	}

	existing, err := s.Get(ctx, pathID)
	if err != nil {
		return nil, err
	}
	book.ISBN = entities.NormalizeISBN(book.ISBN)
	if err := book.Validate(); err != nil {
		return nil, err
	}

	book.CreatedAt = existing.CreatedAt
	if err := s.store.SaveBook(book); err != nil {
		return nil, err
	}
	s.audit.LogUpdate(ctx, entities.ResourceBook, book.ID, book.Title)
	return book, nil
}

// Delete removes the book and its ownership links.
func (s *BookService) Delete(ctx context.Context, id int64) error {
	book, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteBook(book.ID); err != nil {
		return err
	}
	s.audit.LogDelete(ctx, entities.ResourceBook, book.ID, book.Title)
	return nil
}

// List returns one page of books narrowed by filter.
func (s *BookService) List(ctx context.Context, filter books.Filter, page database.PageRequest) (database.Page[entities.Book], error) {
	return s.store.ListBooks(filter, page)
}

// FindByTitle returns every book with exactly this title.
func (s *BookService) FindByTitle(ctx context.Context, title string) ([]entities.Book, error) {
	return s.store.FindBooksByTitle(title)
}

// FindFirstByAuthor returns the earliest stored book by author.
func (s *BookService) FindFirstByAuthor(ctx context.Context, author string) (*entities.Book, error) {
	return s.store.FindFirstByAuthor(author)
}

// Owners lists the users holding the book.
func (s *BookService) Owners(ctx context.Context, id int64) ([]entities.User, error) {
	bookID, err := storedID(id, entities.ResourceBook)
	if err != nil {
		return nil, err
	}
	return s.store.GetOwners(bookID)
}

// LookupByISBN resolves isbn through Open Library, storing the book when it is new.
func (s *BookService) LookupByISBN(ctx context.Context, isbn string) (*entities.Book, error) {
	if s.lookup == nil {
		return nil, fmt.Errorf("isbn lookup is not configured")
	}
	if isbn == "" {
		return nil, entities.NewRequiredFieldError("isbn")
	}
	return s.lookup.LookupByISBN(ctx, isbn)
}
