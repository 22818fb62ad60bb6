package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.SecureHeaders {
		router.Use(auth.StrictTransportSecurityMiddleware())
	}

	// Request ids must be in place before auth so failed logins are traceable
	router.Use(RequestIDMiddleware())

	// Apply auth middleware if enabled
	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.Books)
	usersController := NewUsersController(cfg.Users)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", Ping)

	api := router.Group("/api")

	// Books API endpoints
	api.GET("/books", booksController.ListBooks)
	api.POST("/books", booksController.CreateBook)
	api.GET("/books/isbn/:isbn", booksController.LookupByISBN)
	api.GET("/books/:id", booksController.GetBook)
	api.PUT("/books/:id", booksController.UpdateBook)
	api.DELETE("/books/:id", booksController.DeleteBook)
	api.GET("/books/:id/owners", booksController.GetBookOwners)

	// Users API endpoints
	api.GET("/users", usersController.ListUsers)
	api.POST("/users", usersController.CreateUser)
	api.GET("/users/current-user", usersController.CurrentUser)
	api.GET("/users/:id", usersController.GetUser)
	api.PUT("/users/:id", usersController.UpdateUser)
	api.DELETE("/users/:id", usersController.DeleteUser)
	api.PUT("/users/:id/books/:bookId", usersController.AddBook)
	api.DELETE("/users/:id/books/:bookId", usersController.RemoveBook)

	// Task queue endpoints
	if cfg.TaskClient != nil {
		tasksController := NewTasksController(cfg.TaskClient)
		api.POST("/books/import", tasksController.ImportBooks)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
	}

	// Audit log endpoint
	if cfg.AuditService != nil {
		auditController := NewAuditController(cfg.AuditService)
		api.GET("/audit", auditController.GetAuditEvents)
	}

	return router
}
