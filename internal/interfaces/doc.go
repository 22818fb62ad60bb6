// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - library.BookStore: Book persistence (internal/library/stores.go)
//   - library.UserStore: User persistence and the ownership join table (internal/library/stores.go)
//   - lookup.BookStore: ISBN existence check and insert (internal/lookup/service.go)
//   - auth.UserFinder: Credential lookup by username (internal/auth/service.go)
//
// ## Service Interfaces
//
//   - http.BookService / http.UserService: What the controllers call (internal/http/stores.go)
//   - http.TaskQueue: Bulk import and task status (internal/http/stores.go)
//   - library.PasswordHasher: Hashes plaintext passwords (internal/library/stores.go)
//
// ## External Service Interfaces
//
//   - lookup.RecordFetcher: Bibliographic records by ISBN (internal/lookup/service.go)
//   - library.ISBNLookup / tasks.BookLookup: ISBN lookup with dedup
//
// ## Background Work Interfaces
//
//   - tasks.AuditEventCleaner: Deletes audit events past retention (internal/tasks/cleanup_audit.go)
//   - scheduler.CleanupEnqueuer: Hands cleanup to the task queue (internal/scheduler/audit_cleanup.go)
//
// # Adding a New Bibliographic Source
//
// To resolve ISBNs through another provider (e.g., Google Books):
//
//  1. Implement a client returning *openlibrary.Record, or a new record type
//     with its own mapping next to lookup.MapRecord
//
//     type GoogleBooksClient struct {
//         apiKey     string
//         httpClient *http.Client
//     }
//
//     func (c *GoogleBooksClient) FetchByISBN(ctx context.Context, isbn string) (*openlibrary.Record, error)
//
//     var _ lookup.RecordFetcher = (*GoogleBooksClient)(nil)
//
//  2. Pass it to lookup.NewService in entrypoint/app.go
//
// # Adding a New Database Domain
//
//  1. Create sub-package: internal/database/loans/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Translate errors with database.TranslateError
//
//  4. Add compile-time check:
//
//     var _ library.LoanStore = (*Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
