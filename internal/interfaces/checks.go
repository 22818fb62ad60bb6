package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/users"
	"github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/library"
	"github.com/mrlokans/bookshelf/internal/lookup"
	"github.com/mrlokans/bookshelf/internal/openlibrary"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Library stores
var _ library.BookStore = (*books.Repository)(nil)
var _ library.UserStore = (*users.Repository)(nil)

// Lookup dedup store
var _ lookup.BookStore = (*books.Repository)(nil)

// Credential lookup
var _ auth.UserFinder = (*users.Repository)(nil)

// =============================================================================
// Services
// =============================================================================

// HTTP controller dependencies
var _ http.BookService = (*library.BookService)(nil)
var _ http.UserService = (*library.UserService)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)

// Password hashing
var _ library.PasswordHasher = (*auth.PasswordHasher)(nil)

// =============================================================================
// External Services
// =============================================================================

// Open Library record source
var _ lookup.RecordFetcher = (*openlibrary.Client)(nil)

// ISBN lookup used by the book service and the import task
var _ library.ISBNLookup = (*lookup.Service)(nil)
var _ tasks.BookLookup = (*lookup.Service)(nil)

// =============================================================================
// Background Work
// =============================================================================

// Audit retention
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
var _ scheduler.CleanupEnqueuer = (*tasks.Client)(nil)
