// Package books provides database operations for book management.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetBookByID(123)
//	existing, err := repo.FindBookByISBN("9780140328721")
package books

import (
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// SortColumns lists the keys accepted as sortBy for book listings.
var SortColumns = database.SortColumns{
	"id":        "id",
	"title":     "title",
	"author":    "author",
	"publisher": "publisher",
	"year":      "year",
	"pages":     "pages",
	"isbn":      "isbn",
}

// Filter narrows ListBooks. Empty fields are ignored.
type Filter struct {
	Publisher string
	Year      string
	Genre     string
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBook inserts a new book. A taken ISBN yields entities.ErrDuplicate.
func (r *Repository) CreateBook(book *entities.Book) error {
	book.ID = 0
	book.ISBN = entities.NormalizeISBN(book.ISBN)
	err := r.db.Create(book).Error
	return database.TranslateError(err, entities.ResourceBook)
}

// SaveBook overwrites every column of an existing book.
func (r *Repository) SaveBook(book *entities.Book) error {
	book.ISBN = entities.NormalizeISBN(book.ISBN)
	err := r.db.Save(book).Error
	return database.TranslateError(err, entities.ResourceBook)
}

// GetBookByID retrieves a book by its ID.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, database.TranslateError(err, entities.ResourceBook)
	}
	return &book, nil
}

// FindBookByISBN retrieves the book carrying isbn. Hyphens and spaces are ignored.
func (r *Repository) FindBookByISBN(isbn string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("isbn = ?", entities.NormalizeISBN(isbn)).First(&book).Error
	if err != nil {
		return nil, database.TranslateError(err, entities.ResourceBook)
	}
	return &book, nil
}

// ExistsByISBN reports whether a book with isbn is stored.
func (r *Repository) ExistsByISBN(isbn string) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("isbn = ?", entities.NormalizeISBN(isbn)).Count(&count).Error
	return count > 0, err
}

// FindBooksByTitle returns all books whose title matches exactly.
func (r *Repository) FindBooksByTitle(title string) ([]entities.Book, error) {
	books := []entities.Book{}
	err := r.db.Where("title = ?", title).Order("id ASC").Find(&books).Error
	return books, err
}

// FindFirstByAuthor returns the lowest-id book written by author.
func (r *Repository) FindFirstByAuthor(author string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("author = ?", author).Order("id ASC").First(&book).Error
	if err != nil {
		return nil, database.TranslateError(err, entities.ResourceBook)
	}
	return &book, nil
}

// ListBooks returns one page of books matching filter.
func (r *Repository) ListBooks(filter Filter, page database.PageRequest) (database.Page[entities.Book], error) {
	query := r.db.Model(&entities.Book{})
	if p := strings.TrimSpace(filter.Publisher); p != "" {
		query = query.Where("publisher = ?", p)
	}
	if y := strings.TrimSpace(filter.Year); y != "" {
		query = query.Where("year = ?", y)
	}
	if g := strings.TrimSpace(filter.Genre); g != "" {
		query = query.Where("genre = ?", g)
	}
	return database.Paginate[entities.Book](query, page, SortColumns)
}

// GetOwners loads the users holding the book. The relation is read-only from this side.
func (r *Repository) GetOwners(bookID uint) ([]entities.User, error) {
	if _, err := r.GetBookByID(bookID); err != nil {
		return nil, err
	}

	owners := []entities.User{}
	err := r.db.
		Joins("JOIN user_books ON user_books.user_id = users.id").
		Where("user_books.book_id = ?", bookID).
		Order("users.id ASC").
		Find(&owners).Error
	return owners, err
}

// DeleteBook removes the book and every ownership row pointing at it.
func (r *Repository) DeleteBook(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, id).Error; err != nil {
			return database.TranslateError(err, entities.ResourceBook)
		}
		if err := tx.Exec("DELETE FROM user_books WHERE book_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&book).Error
	})
}

// CountBooks returns the number of stored books.
func (r *Repository) CountBooks() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Count(&count).Error
	return count, err
}
