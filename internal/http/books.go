package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// BooksController handles the /api/books endpoints.
type BooksController struct {
	books BookService
}

func NewBooksController(books BookService) *BooksController {
	return &BooksController{books: books}
}

// ListBooks handles GET /api/books
// ?title= returns every book with that title, ?author= the first book by that author.
// Otherwise returns a page filtered by publisher, year and genre.
func (bc *BooksController) ListBooks(c *gin.Context) {
	ctx := c.Request.Context()

	if title := c.Query("title"); title != "" {
		found, err := bc.books.FindByTitle(ctx, title)
		if err != nil {
			respondDomainError(c, err, "find books by title")
			return
		}
		c.JSON(http.StatusOK, found)
		return
	}

	if author := c.Query("author"); author != "" {
		book, err := bc.books.FindFirstByAuthor(ctx, author)
		if err != nil {
			respondDomainError(c, err, "find book by author")
			return
		}
		c.JSON(http.StatusOK, book)
		return
	}

	page, ok := parsePageRequest(c)
	if !ok {
		return
	}
	filter := books.Filter{
		Publisher: c.Query("publisher"),
		Year:      c.Query("year"),
		Genre:     c.Query("genre"),
	}

	result, err := bc.books.List(ctx, filter, page)
	if err != nil {
		respondDomainError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateBook handles POST /api/books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var book entities.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	created, err := bc.books.Create(c.Request.Context(), &book)
	if err != nil {
		respondDomainError(c, err, "create book")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetBook handles GET /api/books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.books.Get(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// UpdateBook handles PUT /api/books/:id
// The body replaces every column; its id must match the path.
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var book entities.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	updated, err := bc.books.Update(c.Request.Context(), id, &book)
	if err != nil {
		respondDomainError(c, err, "update book")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteBook handles DELETE /api/books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.books.Delete(c.Request.Context(), id); err != nil {
		respondDomainError(c, err, "delete book")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetBookOwners handles GET /api/books/:id/owners
func (bc *BooksController) GetBookOwners(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	owners, err := bc.books.Owners(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err, "get book owners")
		return
	}
	c.JSON(http.StatusOK, owners)
}

// LookupByISBN handles GET /api/books/isbn/:isbn
// Resolves the ISBN through Open Library and stores the book if it is new.
func (bc *BooksController) LookupByISBN(c *gin.Context) {
	book, err := bc.books.LookupByISBN(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		respondDomainError(c, err, "lookup isbn")
		return
	}
	c.JSON(http.StatusOK, book)
}
