package http

import (
	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Books    BookService
	Users    UserService
	Database *database.Database

	// Authentication. A nil middleware leaves every route open.
	AuthMiddleware *auth.Middleware

	// Audit log (optional)
	AuditService *audit.Service

	// Task queue client (optional)
	TaskClient *tasks.Client

	// Send HSTS headers, for deployments behind TLS
	SecureHeaders bool

	// Application info
	Version string
}
