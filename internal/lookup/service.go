// Package lookup turns an Open Library record into a local Book, storing it
// only when no book with the same ISBN exists yet.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/openlibrary"
)

const serviceName = "openlibrary"

// RecordFetcher retrieves bibliographic records by ISBN.
type RecordFetcher interface {
	FetchByISBN(ctx context.Context, isbn string) (*openlibrary.Record, error)
}

// BookStore is the persistence the lookup needs.
type BookStore interface {
	ExistsByISBN(isbn string) (bool, error)
	CreateBook(book *entities.Book) error
}

type Service struct {
	fetcher RecordFetcher
	store   BookStore
	audit   *audit.Service
}

func NewService(fetcher RecordFetcher, store BookStore, auditService *audit.Service) *Service {
	return &Service{
		fetcher: fetcher,
		store:   store,
		audit:   auditService,
	}
}

// LookupByISBN fetches isbn from Open Library and maps it onto a Book.
//
// When a book with the ISBN is already stored, the freshly mapped book is
// returned without an ID and nothing is written. Otherwise the book is
// persisted and returned with its ID.
func (s *Service) LookupByISBN(ctx context.Context, isbn string) (*entities.Book, error) {
	isbn = entities.NormalizeISBN(isbn)

	book, err := s.lookup(ctx, isbn)

	var bookID uint
	if book != nil {
		bookID = book.ID
	}
	s.audit.LogLookup(ctx, isbn, bookID, err)

	return book, err
}

func (s *Service) lookup(ctx context.Context, isbn string) (*entities.Book, error) {
	record, err := s.fetcher.FetchByISBN(ctx, isbn)
	if errors.Is(err, openlibrary.ErrNoRecord) {
		return nil, &entities.NotFoundError{
			Resource: entities.ResourceBook,
			Message:  fmt.Sprintf("Book with ISBN: %s not found", isbn),
		}
	}
	if err != nil {
		return nil, &entities.IntegrationError{Service: serviceName, Err: err}
	}

	book := MapRecord(isbn, record)

	exists, err := s.store.ExistsByISBN(isbn)
	if err != nil {
		return nil, fmt.Errorf("check isbn %s: %w", isbn, err)
	}
	if exists {
		log.Printf("Book with ISBN %s already stored, skipping save", isbn)
		return book, nil
	}

	if err := book.Validate(); err != nil {
		return nil, &entities.IntegrationError{Service: serviceName, Err: err}
	}

	if err := s.store.CreateBook(book); err != nil {
		if errors.Is(err, entities.ErrDuplicate) {
			// stored concurrently since the existence check
			book.ID = 0
			return book, nil
		}
		return nil, fmt.Errorf("save book %s: %w", isbn, err)
	}
	log.Printf("Stored book %d (%s) from Open Library", book.ID, isbn)
	return book, nil
}

// MapRecord copies the fields the library keeps from an Open Library record.
func MapRecord(isbn string, record *openlibrary.Record) *entities.Book {
	author := record.FirstAuthor()
	return &entities.Book{
		Title:     record.Title,
		Subtitle:  record.Subtitle,
		Author:    author.Name,
		Publisher: record.FirstPublisher(),
		Year:      record.Year(),
		Pages:     record.NumberOfPages,
		ISBN:      isbn,
		Image:     author.URL,
	}
}
