package entrypoint

import (
	"fmt"
	"net/http"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	auditdb "github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/users"
	"github.com/mrlokans/bookshelf/internal/library"
	"github.com/mrlokans/bookshelf/internal/lookup"
	"github.com/mrlokans/bookshelf/internal/openlibrary"
)

// App holds the collaborators shared by the HTTP server and the CLI commands.
type App struct {
	DB       *database.Database
	BookRepo *books.Repository
	UserRepo *users.Repository
	Audit    *audit.Service
	Lookup   *lookup.Service
	Hasher   *auth.PasswordHasher
	Books    *library.BookService
	Users    *library.UserService
}

// NewApp opens the database and builds every service on top of it.
func NewApp(cfg *config.Config, logLevel logger.LogLevel) (*App, error) {
	db, err := database.Open(cfg.Database.Path, logLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	bookRepo := books.NewRepository(db.DB)
	userRepo := users.NewRepository(db.DB)
	auditService := audit.NewService(auditdb.NewRepository(db.DB))

	httpClient := &http.Client{Timeout: cfg.OpenLibrary.Timeout}
	olClient := openlibrary.NewClient(httpClient, cfg.OpenLibrary.BaseURL, cfg.OpenLibrary.MinInterval)
	lookupService := lookup.NewService(olClient, bookRepo, auditService)

	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost, cfg.Auth.MinPasswordLength)

	return &App{
		DB:       db,
		BookRepo: bookRepo,
		UserRepo: userRepo,
		Audit:    auditService,
		Lookup:   lookupService,
		Hasher:   hasher,
		Books:    library.NewBookService(bookRepo, lookupService, auditService),
		Users:    library.NewUserService(userRepo, bookRepo, hasher, auditService),
	}, nil
}

// Close releases the database connection.
func (a *App) Close() error {
	return a.DB.Close()
}
