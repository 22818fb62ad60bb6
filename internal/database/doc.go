// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations
//	├── pagination.go    # PageRequest / Page shared by list queries
//	├── books/           # Book CRUD, lookups and filtered listing
//	├── users/           # User CRUD, ownership join table, search
//	└── audit/           # Audit event storage and retention
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./bookshelf.db")
//
//	// Create domain-specific repositories
//	booksRepo := books.NewRepository(db.DB)
//	usersRepo := users.NewRepository(db.DB)
//
//	// Use repositories
//	book, err := booksRepo.GetBookByID(123)
//	page, err := usersRepo.ListUsers(users.Filter{Name: "ada"}, database.PageRequest{})
//
// # Errors
//
// Repositories translate gorm.ErrRecordNotFound into *entities.NotFoundError and
// unique constraint violations into entities.ErrDuplicate, so callers never
// import gorm to classify failures.
//
// # Ownership
//
// The user_books join table is written only through users.Repository.ReplaceBooks.
// Deleting a book or a user removes its join rows in the same transaction.
package database
